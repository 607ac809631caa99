package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hellenic-development/figma-tokens/pkg/tokens"
)

// RenderStories renders a Storybook page of color swatches, grouped by the
// categorized palette when one is supplied and flat otherwise.
func RenderStories(set *tokens.Set, palette *tokens.Palette) string {
	var sb strings.Builder
	sb.WriteString("// " + header + "\n")
	sb.WriteString(`import React from 'react';
import tokens from './design-tokens';

export default {
  title: 'Design Tokens/Colors',
};

const Swatch = ({ name, hex, opacity }) => (
  <div style={{ display: 'flex', alignItems: 'center', gap: 12, marginBottom: 8 }}>
    <div style={{ width: 48, height: 48, borderRadius: 4, background: hex, opacity }} />
    <div>
      <div style={{ fontWeight: 600 }}>{name}</div>
      <code>{hex}</code>
    </div>
  </div>
);

`)

	if palette != nil {
		writeGroup(&sb, "Primary", palette.Primary)
		writeGroup(&sb, "Secondary", palette.Secondary)
		writeGroup(&sb, "Neutral", palette.Neutral)
		for _, bucket := range sortedKeys(palette.Semantic) {
			writeGroup(&sb, bucket, palette.Semantic[bucket])
		}
		writeGroup(&sb, "Other", palette.Other)
	} else {
		writeGroup(&sb, "All", set.Colors)
	}

	return sb.String()
}

func writeGroup(sb *strings.Builder, title string, group map[string]tokens.ColorToken) {
	if len(group) == 0 {
		return
	}

	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString(fmt.Sprintf("export const %s = () => (\n  <div>\n", exportName(title)))
	for _, key := range keys {
		tok := group[key]
		sb.WriteString(fmt.Sprintf("    <Swatch name=%q hex=%q opacity={%g} />\n", key, tok.Hex, tok.Opacity))
	}
	sb.WriteString("  </div>\n);\n\n")
}

// exportName turns a group title into a PascalCase JS identifier.
func exportName(title string) string {
	var sb strings.Builder
	upper := true
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
			sb.WriteRune(r)
			upper = false
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	return sb.String()
}
