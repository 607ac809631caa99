package figmatokens

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

// stubSource serves canned design data to the pipeline.
type stubSource struct {
	doc       *figma.Node
	published map[string]figma.Paint
	variables map[string]string
	styleErr  error
	varErr    error
}

func (s *stubSource) Document(context.Context) (*figma.Node, error) { return s.doc, nil }

func (s *stubSource) PublishedColors(context.Context) (map[string]figma.Paint, error) {
	return s.published, s.styleErr
}

func (s *stubSource) Variables(context.Context) (map[string]string, error) {
	return s.variables, s.varErr
}

func (s *stubSource) Describe() string { return "stub" }

type recordingLogger struct {
	infos, warns, errs []string
}

func (l *recordingLogger) Infof(f string, a ...any)  { l.infos = append(l.infos, f) }
func (l *recordingLogger) Warnf(f string, a ...any)  { l.warns = append(l.warns, f) }
func (l *recordingLogger) Errorf(f string, a ...any) { l.errs = append(l.errs, f) }

func sampleDocument() *figma.Node {
	return &figma.Node{
		ID:   "0:0",
		Name: "Document",
		Type: "DOCUMENT",
		Children: []figma.Node{
			{
				ID:   "1:1",
				Name: "Primary Button",
				Type: "RECTANGLE",
				Fills: []figma.Paint{
					{Type: "SOLID", Color: &figma.Color{R: 0.2, G: 0.4, B: 0.8}},
				},
			},
			{
				ID:   "1:2",
				Name: "Heading",
				Type: "TEXT",
				Style: &figma.TypeStyle{
					FontFamily: "Inter", FontSize: 24, FontWeight: 600, LineHeightPx: 32,
				},
			},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{
		doc: sampleDocument(),
		published: map[string]figma.Paint{
			"Brand": {Type: "SOLID", Color: &figma.Color{R: 1, G: 0, B: 0}},
		},
		variables: map[string]string{"xs": "4px", "sm": "8px"},
	}

	result, err := Run(context.Background(), Options{Source: src, OutDir: dir})
	require.NoError(t, err)

	tok, ok := result.Set.Colors["primary-button-fill-0"]
	require.True(t, ok)
	assert.Equal(t, "#3366cc", tok.Hex)

	brand, ok := result.Set.Colors["brand"]
	require.True(t, ok, "published styles join the walked colors")
	assert.Equal(t, "#ff0000", brand.Hex)

	assert.Contains(t, result.Set.Typography, "heading")
	assert.Equal(t, map[string]string{"xs": "4px", "sm": "8px"}, result.Set.Spacing)
	assert.Equal(t, "stub", result.Set.Metadata.Source)
	assert.False(t, result.Set.Metadata.Generated.IsZero())

	require.NotNil(t, result.Palette)
	assert.Contains(t, result.Palette.Primary, "primary-button-fill-0")

	require.Len(t, result.Files, 4)
	for _, f := range result.Files {
		_, err := os.Stat(f)
		assert.NoError(t, err)
	}
	assert.NoFileExists(t, filepath.Join(dir, "Colors.stories.tsx"),
		"stories are opt-in")
}

func TestExtractContinuesWithoutSecondaryLookups(t *testing.T) {
	log := &recordingLogger{}
	src := &stubSource{
		doc:      sampleDocument(),
		styleErr: errors.New("styles endpoint down"),
		varErr:   errors.New("variables endpoint down"),
	}

	set, palette, err := Extract(context.Background(), Options{Source: src, Logger: log})
	require.NoError(t, err, "secondary lookup failures do not abort extraction")

	assert.Contains(t, set.Colors, "primary-button-fill-0")
	assert.Empty(t, set.Spacing)
	assert.NotNil(t, palette)
	assert.Len(t, log.warns, 2)
	assert.Empty(t, log.errs)
}

func TestExtractRequiresSource(t *testing.T) {
	_, _, err := Extract(context.Background(), Options{})
	require.ErrorContains(t, err, "Source is required")
}

func TestRunStampsVersion(t *testing.T) {
	src := &stubSource{doc: sampleDocument()}
	result, err := Run(context.Background(), Options{
		Source:     src,
		OutDir:     t.TempDir(),
		SetVersion: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Set.Metadata.Version)
}
