package figma

import (
	"encoding/json"
	"fmt"
)

// DecodeError is a structural violation found while validating an API
// payload. Path points at the offending field in the document tree.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %s: %s", e.Path, e.Reason)
}

// nodeJSON mirrors Node but keeps the collection fields raw so a malformed
// fills/strokes/children value poisons only the node that carries it.
type nodeJSON struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	Children            json.RawMessage `json:"children"`
	BackgroundColor     *Color          `json:"backgroundColor"`
	Fills               json.RawMessage `json:"fills"`
	Strokes             json.RawMessage `json:"strokes"`
	Characters          string          `json:"characters"`
	Style               *TypeStyle      `json:"style"`
	AbsoluteBoundingBox *Rectangle      `json:"absoluteBoundingBox"`
}

// SetMalformed marks the node as partially decoded. Extraction skips
// malformed nodes but still descends into any children that survived.
func (n *Node) SetMalformed() { n.malformed = true }

// IsMalformed reports whether part of the node failed to decode.
func (n *Node) IsMalformed() bool { return n.malformed }

// UnmarshalJSON decodes a node leniently: a fills, strokes, or children value
// of the wrong shape marks the node malformed instead of failing the whole
// document decode.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Name = raw.Name
	n.Type = raw.Type
	n.BackgroundColor = raw.BackgroundColor
	n.Characters = raw.Characters
	n.Style = raw.Style
	n.AbsoluteBoundingBox = raw.AbsoluteBoundingBox
	n.Children = nil
	n.Fills = nil
	n.Strokes = nil
	n.malformed = false

	if len(raw.Fills) > 0 && string(raw.Fills) != "null" {
		if err := json.Unmarshal(raw.Fills, &n.Fills); err != nil {
			n.Fills = nil
			n.malformed = true
		}
	}
	if len(raw.Strokes) > 0 && string(raw.Strokes) != "null" {
		if err := json.Unmarshal(raw.Strokes, &n.Strokes); err != nil {
			n.Strokes = nil
			n.malformed = true
		}
	}
	if len(raw.Children) > 0 && string(raw.Children) != "null" {
		if err := json.Unmarshal(raw.Children, &n.Children); err != nil {
			n.Children = nil
			n.malformed = true
		}
	}

	return nil
}

// ValidateDocument checks a decoded document tree for out-of-range values and
// missing identity, failing fast with a typed DecodeError instead of letting
// zero values leak into extraction.
func ValidateDocument(root *Node) error {
	return validateNode(root, "document")
}

func validateNode(n *Node, path string) error {
	if n.ID == "" {
		return &DecodeError{Path: path, Reason: "missing node id"}
	}

	for i := range n.Fills {
		if err := validatePaint(&n.Fills[i], fmt.Sprintf("%s.fills[%d]", path, i)); err != nil {
			return err
		}
	}
	for i := range n.Strokes {
		if err := validatePaint(&n.Strokes[i], fmt.Sprintf("%s.strokes[%d]", path, i)); err != nil {
			return err
		}
	}
	if n.BackgroundColor != nil {
		if err := validateColor(n.BackgroundColor, path+".backgroundColor"); err != nil {
			return err
		}
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func validatePaint(p *Paint, path string) error {
	if p.Opacity != nil && (*p.Opacity < 0 || *p.Opacity > 1) {
		return &DecodeError{Path: path + ".opacity", Reason: fmt.Sprintf("opacity %g outside [0,1]", *p.Opacity)}
	}
	if p.Color != nil {
		return validateColor(p.Color, path+".color")
	}
	return nil
}

func validateColor(c *Color, path string) error {
	channels := []struct {
		name  string
		value float64
	}{
		{"r", c.R}, {"g", c.G}, {"b", c.B}, {"a", c.Alpha()},
	}
	for _, ch := range channels {
		if ch.value < 0 || ch.value > 1 {
			return &DecodeError{
				Path:   path + "." + ch.name,
				Reason: fmt.Sprintf("channel value %g outside [0,1]", ch.value),
			}
		}
	}
	return nil
}
