package emitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-tokens/pkg/tokens"
)

func sampleSet() *tokens.Set {
	set := tokens.NewSet()
	set.Colors["primary-button-fill-0"] = tokens.ColorToken{
		Hex: "#3366cc", RGB: tokens.RGB{R: 0.2, G: 0.4, B: 0.8},
		Opacity: 1, Key: "primary-button-fill-0", Name: "Primary Button",
	}
	set.Typography["heading"] = tokens.TypographyToken{
		FontFamily: "Inter", FontSize: 24, FontWeight: 600, LineHeight: 32,
		Key: "heading", Name: "Heading",
	}
	set.Spacing["xs"] = "4px"
	set.Spacing["sm"] = "8px"
	set.Metadata = tokens.Metadata{
		Generated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Source:    "file:export.json",
		Version:   3,
	}
	return set
}

func TestRenderCSS(t *testing.T) {
	css := RenderCSS(sampleSet())

	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--color-primary-button-fill-0: #3366cc;")
	assert.Contains(t, css, "--typography-heading-family: 'Inter';")
	assert.Contains(t, css, "--typography-heading-size: 24px;")
	assert.Contains(t, css, "--typography-heading-weight: 600;")
	assert.Contains(t, css, "--typography-heading-line-height: 32px;")
	assert.Contains(t, css, "--spacing-xs: 4px;\n  --spacing-sm: 8px;\n",
		"spacing is ordered by value, smallest first")
}

func TestRenderCSSDeterministic(t *testing.T) {
	set := sampleSet()
	assert.Equal(t, RenderCSS(set), RenderCSS(set))
}

func TestRenderJS(t *testing.T) {
	js := RenderJS(sampleSet())

	assert.Contains(t, js, "export const colors = {")
	assert.Contains(t, js, "export const typography = {")
	assert.Contains(t, js, "export const spacing = {")
	assert.Contains(t, js, "export const metadata = {")
	assert.Contains(t, js, "export default { colors, typography, spacing, metadata };")
	assert.Contains(t, js, `"hex": "#3366cc"`)
}

func TestRenderDTSDeclaresShapes(t *testing.T) {
	dts := RenderDTS()

	for _, decl := range []string{
		"export interface ColorToken",
		"export interface TypographyToken",
		"export interface TokenMetadata",
		"export interface DesignTokens",
		"export default tokens;",
	} {
		assert.Contains(t, dts, decl)
	}
}

func TestRenderJSONMirrorsSet(t *testing.T) {
	set := sampleSet()
	data, err := RenderJSON(set)
	require.NoError(t, err)

	var back tokens.Set
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *set, back)
}

func TestWriteProducesAllArtifactsFromOneSet(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()
	palette := tokens.Categorize(set.Colors, tokens.DefaultCategorizeConfig())

	e := &Emitter{OutDir: dir, Stories: true}
	written, err := e.Write(set, palette)
	require.NoError(t, err)

	require.Len(t, written, 5)
	for _, name := range []string{CSSFile, JSFile, DTSFile, JSONFile, StoriesFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected artifact %s", name)
	}

	// The JSON artifact and the CSS artifact agree on the color value because
	// both came from the same set.
	cssBytes, _ := os.ReadFile(filepath.Join(dir, CSSFile))
	jsonBytes, _ := os.ReadFile(filepath.Join(dir, JSONFile))
	assert.Contains(t, string(cssBytes), "#3366cc")
	assert.Contains(t, string(jsonBytes), "#3366cc")
}

func TestWriteIdempotentExceptTimestamp(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()

	e := &Emitter{OutDir: dir}
	_, err := e.Write(set, nil)
	require.NoError(t, err)
	first, _ := os.ReadFile(filepath.Join(dir, CSSFile))

	// Second run over the unchanged set with a different timestamp.
	set2 := sampleSet()
	set2.Metadata.Generated = set.Metadata.Generated.Add(time.Hour)
	_, err = e.Write(set2, nil)
	require.NoError(t, err)
	second, _ := os.ReadFile(filepath.Join(dir, CSSFile))

	assert.Equal(t, string(first), string(second), "CSS does not embed the timestamp")

	firstJSON, _ := os.ReadFile(filepath.Join(dir, JSONFile))
	_, err = e.Write(set2, nil)
	require.NoError(t, err)
	secondJSON, _ := os.ReadFile(filepath.Join(dir, JSONFile))
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestRenderStoriesGroups(t *testing.T) {
	set := sampleSet()
	set.Colors["gray-500-fill-0"] = tokens.ColorToken{
		Hex: "#808080", Opacity: 1, Key: "gray-500-fill-0", Name: "Gray-500",
	}
	palette := tokens.Categorize(set.Colors, tokens.DefaultCategorizeConfig())

	stories := RenderStories(set, palette)

	assert.Contains(t, stories, "export const Primary = () => (")
	assert.Contains(t, stories, "export const Neutral = () => (")
	assert.Contains(t, stories, `hex="#3366cc"`)
	assert.False(t, strings.Contains(stories, "export const Other"), "empty buckets render nothing")
}
