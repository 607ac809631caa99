// Package source abstracts where design data comes from. The pipeline only
// ever sees a document tree, a published-style map, and a variables map;
// whether those arrive over the Figma REST API, from a local export file, or
// from an MCP server is a construction-time choice.
package source

import (
	"context"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

// Source provides the three inputs of an extraction run. Document is
// mandatory; PublishedColors and Variables are secondary lookups the pipeline
// degrades gracefully without.
type Source interface {
	// Document returns the root of the design document tree.
	Document(ctx context.Context) (*figma.Node, error)

	// PublishedColors returns solid paints of published color styles keyed by
	// the style's author-assigned name.
	PublishedColors(ctx context.Context) (map[string]figma.Paint, error)

	// Variables returns the designer-defined spacing scale as literal
	// dimension strings keyed by variable name.
	Variables(ctx context.Context) (map[string]string, error)

	// Describe identifies the source for token metadata and logs.
	Describe() string
}
