package tokens

import (
	"fmt"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

const solidPaint = "SOLID"

// ExtractColors walks the tree and collects every visible SOLID fill and
// stroke into a color map. Named nodes key their paints as
// <slug>-fill-<i> / <slug>-stroke-<i>; anonymous paints are named by the key
// strategy. Malformed nodes contribute nothing but do not stop the walk.
func ExtractColors(root *figma.Node, keys KeyStrategy) map[string]ColorToken {
	if keys == nil {
		keys = HashKeys{}
	}

	out := make(map[string]ColorToken)
	Walk(root, func(n *figma.Node) {
		if n.IsMalformed() {
			return
		}
		collectPaints(out, n, n.Fills, "fill", keys)
		collectPaints(out, n, n.Strokes, "stroke", keys)
		collectBackground(out, n, keys)
	})
	return out
}

func collectPaints(out map[string]ColorToken, n *figma.Node, paints []figma.Paint, kind string, keys KeyStrategy) {
	for i, p := range paints {
		if p.Type != solidPaint || p.Color == nil || !p.IsVisible() {
			continue
		}

		hex := ToHex(p.Color.R, p.Color.G, p.Color.B)
		key := ""
		if slug := Slugify(n.Name); slug != "" {
			key = fmt.Sprintf("%s-%s-%d", slug, kind, i)
		} else {
			key = keys.ColorKey(hex, n.ID, i)
		}

		out[key] = ColorToken{
			Hex:     hex,
			RGB:     RGB{R: p.Color.R, G: p.Color.G, B: p.Color.B},
			Opacity: p.EffectiveOpacity(),
			Key:     key,
			Name:    n.Name,
		}
	}
}

// collectBackground records a node's background color. Unlike fills and
// strokes, a fully transparent background (alpha exactly 0) is skipped: it
// paints nothing.
func collectBackground(out map[string]ColorToken, n *figma.Node, keys KeyStrategy) {
	c := n.BackgroundColor
	if c == nil || c.Alpha() == 0 {
		return
	}

	hex := ToHex(c.R, c.G, c.B)
	key := ""
	if slug := Slugify(n.Name); slug != "" {
		key = slug + "-bg"
	} else {
		key = keys.ColorKey(hex, n.ID+"/bg", 0)
	}

	out[key] = ColorToken{
		Hex:     hex,
		RGB:     RGB{R: c.R, G: c.G, B: c.B},
		Opacity: c.Alpha(),
		Key:     key,
		Name:    n.Name,
	}
}

// MergePublished overlays published style colors onto a walked color map.
// Published definitions are applied after the walk, so a style whose derived
// key collides with a walked token overrides it.
func MergePublished(colors map[string]ColorToken, published map[string]figma.Paint) {
	for name, p := range published {
		if p.Type != solidPaint || p.Color == nil {
			continue
		}

		key := Slugify(name)
		if key == "" {
			continue
		}

		colors[key] = ColorToken{
			Hex:     ToHex(p.Color.R, p.Color.G, p.Color.B),
			RGB:     RGB{R: p.Color.R, G: p.Color.G, B: p.Color.B},
			Opacity: p.EffectiveOpacity(),
			Key:     key,
			Name:    name,
		}
	}
}

// ExtractTypography collects the text styles of named TEXT nodes, keyed by
// the slug of the node name. Key collisions overwrite: last write in
// traversal order wins.
func ExtractTypography(root *figma.Node) map[string]TypographyToken {
	out := make(map[string]TypographyToken)
	Walk(root, func(n *figma.Node) {
		if n.IsMalformed() || n.Type != "TEXT" || n.Style == nil {
			return
		}
		key := Slugify(n.Name)
		if key == "" {
			return
		}

		out[key] = TypographyToken{
			FontFamily: n.Style.FontFamily,
			FontSize:   n.Style.FontSize,
			FontWeight: n.Style.FontWeight,
			LineHeight: n.Style.LineHeightPx,
			Key:        key,
			Name:       n.Name,
		}
	})
	return out
}

// CopySpacing clones the designer-defined spacing scale. Spacing values are
// authored directly as dimension strings, so no transformation applies.
func CopySpacing(spacing map[string]string) map[string]string {
	out := make(map[string]string, len(spacing))
	for name, value := range spacing {
		out[name] = value
	}
	return out
}
