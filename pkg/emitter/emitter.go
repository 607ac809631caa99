// Package emitter renders a token set into its distribution formats: CSS
// custom properties, a JavaScript module, a TypeScript declaration file, and
// raw JSON. Every artifact of one Write call is rendered from the same
// in-memory set, so the formats can never disagree with each other.
package emitter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hellenic-development/figma-tokens/pkg/tokens"
)

// Output file names, written under the emitter's directory.
const (
	CSSFile     = "design-tokens.css"
	JSFile      = "design-tokens.js"
	DTSFile     = "design-tokens.d.ts"
	JSONFile    = "design-tokens.json"
	StoriesFile = "Colors.stories.tsx"
)

const header = "Generated by figma-tokens. Do not edit by hand."

// Emitter writes the generated artifacts of a token set.
type Emitter struct {
	OutDir  string
	Stories bool // also emit a Storybook swatch page
}

// Write renders every artifact from the given set and writes them under
// OutDir. Filesystem failures abort immediately; the paths written so far are
// not cleaned up.
func (e *Emitter) Write(set *tokens.Set, palette *tokens.Palette) ([]string, error) {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", e.OutDir, err)
	}

	jsonBytes, err := RenderJSON(set)
	if err != nil {
		return nil, err
	}

	artifacts := []struct {
		name string
		body []byte
	}{
		{CSSFile, []byte(RenderCSS(set))},
		{JSFile, []byte(RenderJS(set))},
		{DTSFile, []byte(RenderDTS())},
		{JSONFile, jsonBytes},
	}
	if e.Stories {
		artifacts = append(artifacts, struct {
			name string
			body []byte
		}{StoriesFile, []byte(RenderStories(set, palette))})
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(e.OutDir, a.name)
		if err := os.WriteFile(path, a.body, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// RenderCSS renders one :root block of custom properties. Colors and
// typography are ordered by key; spacing is ordered by numeric value so the
// scale reads smallest to largest.
func RenderCSS(set *tokens.Set) string {
	var sb strings.Builder
	sb.WriteString("/* " + header + " */\n")
	sb.WriteString(fmt.Sprintf("/* Source: %s */\n\n", set.Metadata.Source))
	sb.WriteString(":root {\n")

	if len(set.Colors) > 0 {
		sb.WriteString("  /* Colors */\n")
		for _, key := range sortedKeys(set.Colors) {
			sb.WriteString(fmt.Sprintf("  --color-%s: %s;\n", key, set.Colors[key].Hex))
		}
	}

	if len(set.Typography) > 0 {
		sb.WriteString("  /* Typography */\n")
		for _, key := range sortedKeys(set.Typography) {
			t := set.Typography[key]
			sb.WriteString(fmt.Sprintf("  --typography-%s-family: '%s';\n", key, t.FontFamily))
			sb.WriteString(fmt.Sprintf("  --typography-%s-size: %spx;\n", key, formatNumber(t.FontSize)))
			sb.WriteString(fmt.Sprintf("  --typography-%s-weight: %s;\n", key, formatNumber(t.FontWeight)))
			sb.WriteString(fmt.Sprintf("  --typography-%s-line-height: %spx;\n", key, formatNumber(t.LineHeight)))
		}
	}

	if len(set.Spacing) > 0 {
		sb.WriteString("  /* Spacing */\n")
		for _, name := range spacingOrder(set.Spacing) {
			sb.WriteString(fmt.Sprintf("  --spacing-%s: %s;\n", name, set.Spacing[name]))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// RenderJS renders an ES module exporting the token groups and a default
// aggregate. Object literals are JSON, which is valid JavaScript and keeps
// key order stable.
func RenderJS(set *tokens.Set) string {
	var sb strings.Builder
	sb.WriteString("// " + header + "\n\n")

	sb.WriteString("export const colors = ")
	sb.WriteString(mustJSON(set.Colors))
	sb.WriteString(";\n\n")

	sb.WriteString("export const typography = ")
	sb.WriteString(mustJSON(set.Typography))
	sb.WriteString(";\n\n")

	sb.WriteString("export const spacing = ")
	sb.WriteString(mustJSON(set.Spacing))
	sb.WriteString(";\n\n")

	sb.WriteString("export const metadata = ")
	sb.WriteString(mustJSON(set.Metadata))
	sb.WriteString(";\n\n")

	sb.WriteString("export default { colors, typography, spacing, metadata };\n")
	return sb.String()
}

// RenderDTS renders the declaration file describing the JS module's shape.
func RenderDTS() string {
	return "// " + header + `

export interface ColorToken {
  hex: string;
  rgb: { r: number; g: number; b: number };
  opacity: number;
  key: string;
  name: string;
}

export interface TypographyToken {
  fontFamily: string;
  fontSize: number;
  fontWeight: number;
  lineHeight: number;
  key: string;
  name: string;
}

export interface TokenMetadata {
  generated: string;
  source: string;
  version: number;
}

export interface DesignTokens {
  colors: Record<string, ColorToken>;
  typography: Record<string, TypographyToken>;
  spacing: Record<string, string>;
  metadata: TokenMetadata;
}

export declare const colors: Record<string, ColorToken>;
export declare const typography: Record<string, TypographyToken>;
export declare const spacing: Record<string, string>;
export declare const metadata: TokenMetadata;

declare const tokens: DesignTokens;
export default tokens;
`
}

// RenderJSON renders the interchange artifact: an exact mirror of the
// in-memory set, which other tools read back.
func RenderJSON(set *tokens.Set) ([]byte, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal token set: %w", err)
	}
	return append(data, '\n'), nil
}

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// All token types are plain data; this cannot fail at runtime.
		panic(err)
	}
	return string(data)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// spacingOrder sorts spacing names by the numeric value of their dimension,
// falling back to name order for ties and unparsable values.
func spacingOrder(spacing map[string]string) []string {
	names := sortedKeys(spacing)
	sort.SliceStable(names, func(i, j int) bool {
		vi, oki := dimensionValue(spacing[names[i]])
		vj, okj := dimensionValue(spacing[names[j]])
		if oki && okj && vi != vj {
			return vi < vj
		}
		if oki != okj {
			return oki
		}
		return names[i] < names[j]
	})
	return names
}

func dimensionValue(dim string) (float64, bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(dim), "abcdefghijklmnopqrstuvwxyz%")
	v, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	return v, err == nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
