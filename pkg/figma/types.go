package figma

// FileResponse is the payload of the Figma file endpoint: file metadata,
// the document tree, and the published style index.
type FileResponse struct {
	Name          string           `json:"name"`
	LastModified  string           `json:"lastModified"`
	Version       string           `json:"version"`
	Document      Node             `json:"document"`
	Styles        map[string]Style `json:"styles"`
	SchemaVersion int              `json:"schemaVersion"`
}

// NodesResponse is the payload of the nodes endpoint when fetching specific
// nodes by ID, keyed by the requested node ID.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a requested node's document subtree together with any styles
// scoped to it.
type NodeData struct {
	Document Node             `json:"document"`
	Styles   map[string]Style `json:"styles,omitempty"`
}

// StylesResponse is the payload of the published-styles endpoint.
type StylesResponse struct {
	Meta StylesMeta `json:"meta"`
}

// StylesMeta lists the published style metadata entries of a file.
type StylesMeta struct {
	Styles []StyleMetadata `json:"styles"`
}

// StyleMetadata describes a single published style: its key, the node that
// defines it, and its type (FILL, TEXT, EFFECT, GRID).
type StyleMetadata struct {
	Key         string `json:"key"`
	FileKey     string `json:"file_key"`
	NodeID      string `json:"node_id"`
	StyleType   string `json:"style_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style is a published style reference as it appears inline in a file
// response.
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"style_type"`
}

// VariablesResponse is the payload of the local-variables endpoint.
type VariablesResponse struct {
	Meta VariablesMeta `json:"meta"`
}

// VariablesMeta holds the variable definitions of a file keyed by variable ID.
type VariablesMeta struct {
	Variables map[string]Variable `json:"variables"`
}

// Variable is a designer-defined design variable. ValuesByMode maps mode IDs
// to raw values; for FLOAT variables the value is a number of pixels.
type Variable struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ResolvedType  string         `json:"resolvedType"`
	ValuesByMode  map[string]any `json:"valuesByMode"`
	HiddenFromPub bool           `json:"hiddenFromPublishing"`
}

// Node is a single element of the document tree. Optional fields are omitted
// by the API when absent; nil slices are treated as empty by the walker.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Children            []Node     `json:"children,omitempty"`
	BackgroundColor     *Color     `json:"backgroundColor,omitempty"`
	Fills               []Paint    `json:"fills,omitempty"`
	Strokes             []Paint    `json:"strokes,omitempty"`
	Characters          string     `json:"characters,omitempty"`
	Style               *TypeStyle `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`

	malformed bool
}

// Color is an RGBA color with channels as floats in [0,1]. Alpha is optional
// on the wire; a nil A means fully opaque.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Alpha returns the alpha channel, defaulting to 1 when absent.
func (c Color) Alpha() float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

// Paint is a fill or stroke applied to a node. Visible and Opacity default to
// true and 1 respectively when omitted by the API.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// IsVisible reports whether the paint is rendered. The API omits the field
// for visible paints.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectiveOpacity combines the paint opacity with the color alpha.
func (p Paint) EffectiveOpacity() float64 {
	o := 1.0
	if p.Opacity != nil {
		o = *p.Opacity
	}
	if p.Color != nil {
		o *= p.Color.Alpha()
	}
	return o
}

// TypeStyle carries the text styling of a TEXT node.
type TypeStyle struct {
	FontFamily   string  `json:"fontFamily"`
	FontWeight   float64 `json:"fontWeight"`
	FontSize     float64 `json:"fontSize"`
	LineHeightPx float64 `json:"lineHeightPx"`
}

// Rectangle is an absolute bounding box on the canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
