// Package figmatokens extracts design tokens (colors, typography, spacing)
// from Figma files and renders them as CSS custom properties, a JavaScript
// module, TypeScript declarations, and JSON, optionally keeping them in sync
// with the design file over time.
//
// The CLI lives in cmd/figma-tokens; this root package exposes the same
// pipeline as a Go API so that callers can embed token generation in their
// own tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmatokens:
//
//	import "github.com/hellenic-development/figma-tokens" // package figmatokens
//
// # Quick start
//
//	client := figma.NewClient(os.Getenv("FIGMA_TOKEN"))
//	fileKey, err := figma.ExtractFileKey("https://www.figma.com/design/ABC123/My-Design")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := figmatokens.Run(context.Background(), figmatokens.Options{
//	    Source: source.NewAPI(client, fileKey),
//	    OutDir: "src/styles",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d artifacts\n", len(result.Files))
//
// Data can also come from a local exported document (source.NewFile) or a
// Model Context Protocol server (source.NewMCP); the pipeline is identical
// regardless of the source. For continuous synchronization see pkg/syncer,
// which wraps Extract and the emitter in a gated watch loop.
package figmatokens
