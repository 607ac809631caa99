package tokens

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

func solid(r, g, b float64) figma.Paint {
	return figma.Paint{Type: "SOLID", Color: &figma.Color{R: r, G: g, B: b}}
}

func TestWalkPreOrder(t *testing.T) {
	root := &figma.Node{
		ID: "0", Name: "root",
		Children: []figma.Node{
			{ID: "1", Name: "a", Children: []figma.Node{{ID: "2", Name: "a1"}}},
			{ID: "3", Name: "b"},
		},
	}

	var order []string
	Walk(root, func(n *figma.Node) { order = append(order, n.ID) })

	assert.Equal(t, []string{"0", "1", "2", "3"}, order)
}

func TestExtractColorsNamedFill(t *testing.T) {
	root := &figma.Node{
		ID: "0:0", Name: "Document", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1:1", Name: "Primary Button", Type: "COMPONENT", Fills: []figma.Paint{solid(0.2, 0.4, 0.8)}},
		},
	}

	colors := ExtractColors(root, HashKeys{})

	tok, ok := colors["primary-button-fill-0"]
	require.True(t, ok, "derived key is slug plus fill index, got %v", colors)
	assert.Equal(t, "#3366cc", tok.Hex)
	assert.Equal(t, 1.0, tok.Opacity)
	assert.Equal(t, "Primary Button", tok.Name)
	assert.Equal(t, RGB{R: 0.2, G: 0.4, B: 0.8}, tok.RGB)
}

func TestExtractColorsStrokeAndAnonymous(t *testing.T) {
	root := &figma.Node{
		ID: "0:0", Name: "Document", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1:1", Name: "Card", Type: "FRAME", Strokes: []figma.Paint{solid(1, 0, 0)}},
			{ID: "1:2", Name: "", Type: "RECTANGLE", Fills: []figma.Paint{solid(0, 1, 0)}},
		},
	}

	colors := ExtractColors(root, HashKeys{})

	_, ok := colors["card-stroke-0"]
	assert.True(t, ok)

	var anon *ColorToken
	for _, tok := range colors {
		if tok.Name == "" {
			cp := tok
			anon = &cp
		}
	}
	require.NotNil(t, anon, "anonymous fill gets a strategy-derived key")
	assert.Regexp(t, `^color-[0-9a-z]{9}$`, anon.Key)
	assert.Equal(t, "#00ff00", anon.Hex)

	// Deterministic: a second extraction yields the same keys.
	again := ExtractColors(root, HashKeys{})
	assert.Equal(t, colors, again)
}

func TestExtractColorsSkipsInvisibleAndNonSolid(t *testing.T) {
	hidden := false
	root := &figma.Node{
		ID: "1:1", Name: "Mixed", Type: "FRAME",
		Fills: []figma.Paint{
			{Type: "GRADIENT_LINEAR"},
			{Type: "SOLID", Visible: &hidden, Color: &figma.Color{R: 1, G: 1, B: 1}},
			{Type: "SOLID"}, // no color payload
		},
	}

	assert.Empty(t, ExtractColors(root, HashKeys{}))
}

func TestTransparentAlphaAsymmetry(t *testing.T) {
	zero := 0.0
	root := &figma.Node{
		ID: "1:1", Name: "Ghost", Type: "FRAME",
		BackgroundColor: &figma.Color{R: 1, G: 1, B: 1, A: &zero},
		Fills:           []figma.Paint{{Type: "SOLID", Color: &figma.Color{R: 1, G: 1, B: 1, A: &zero}}},
	}

	colors := ExtractColors(root, HashKeys{})

	_, bg := colors["ghost-bg"]
	assert.False(t, bg, "alpha 0 background paints nothing and is excluded")

	tok, ok := colors["ghost-fill-0"]
	require.True(t, ok, "alpha 0 fill is still a foreground token")
	assert.Equal(t, 0.0, tok.Opacity)
}

func TestExtractColorsBackground(t *testing.T) {
	root := &figma.Node{
		ID: "1:1", Name: "Page", Type: "CANVAS",
		BackgroundColor: &figma.Color{R: 0.96, G: 0.96, B: 0.96},
	}

	colors := ExtractColors(root, HashKeys{})
	tok, ok := colors["page-bg"]
	require.True(t, ok)
	assert.Equal(t, "#f5f5f5", tok.Hex)
}

func TestExtractColorsSkipsMalformedNode(t *testing.T) {
	raw := `{
		"id": "0:0", "name": "Document", "type": "DOCUMENT",
		"children": [
			{"id": "1:1", "name": "Broken", "type": "FRAME", "fills": 42,
			 "children": [
				{"id": "1:2", "name": "Fine", "type": "RECTANGLE",
				 "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 1}}]}
			]}
		]
	}`
	var root figma.Node
	require.NoError(t, json.Unmarshal([]byte(raw), &root))

	colors := ExtractColors(&root, HashKeys{})

	_, ok := colors["fine-fill-0"]
	assert.True(t, ok, "walk continues past a malformed node")
	assert.Len(t, colors, 1)
}

func TestMergePublishedOverridesWalkedColor(t *testing.T) {
	root := &figma.Node{
		ID: "1:1", Name: "Brand", Type: "FRAME",
		Fills: []figma.Paint{solid(0, 0, 0)},
	}
	colors := ExtractColors(root, HashKeys{})
	require.Equal(t, "#000000", colors["brand-fill-0"].Hex)

	MergePublished(colors, map[string]figma.Paint{
		"Brand Fill 0": solid(0.2, 0.4, 0.8), // slugs to the same derived key
		"Accent":       solid(1, 0, 1),
	})

	assert.Equal(t, "#3366cc", colors["brand-fill-0"].Hex, "published style wins over walked fill")
	assert.Equal(t, "#ff00ff", colors["accent"].Hex)
}

func TestExtractTypographyLastWriteWins(t *testing.T) {
	root := &figma.Node{
		ID: "0:0", Name: "Document", Type: "DOCUMENT",
		Children: []figma.Node{
			{ID: "1:1", Name: "Heading", Type: "TEXT",
				Style: &figma.TypeStyle{FontFamily: "Inter", FontSize: 24, FontWeight: 600, LineHeightPx: 32}},
			{ID: "1:2", Name: "Heading", Type: "TEXT",
				Style: &figma.TypeStyle{FontFamily: "Inter", FontSize: 28, FontWeight: 700, LineHeightPx: 36}},
			{ID: "1:3", Name: "Not Text", Type: "FRAME"},
			{ID: "1:4", Name: "Styleless", Type: "TEXT"},
		},
	}

	typo := ExtractTypography(root)

	require.Len(t, typo, 1)
	tok := typo["heading"]
	assert.Equal(t, 28.0, tok.FontSize, "later traversal entry overwrites")
	assert.Equal(t, 700.0, tok.FontWeight)
	assert.Equal(t, "Heading", tok.Name)
}

func TestCopySpacingIsDirect(t *testing.T) {
	src := map[string]string{"xs": "4px", "sm": "8px"}
	got := CopySpacing(src)

	assert.Equal(t, src, got)
	got["xs"] = "mutated"
	assert.Equal(t, "4px", src["xs"], "copy does not alias the source map")
}
