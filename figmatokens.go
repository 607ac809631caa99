package figmatokens

import (
	"context"
	"fmt"
	"time"

	"github.com/hellenic-development/figma-tokens/pkg/emitter"
	"github.com/hellenic-development/figma-tokens/pkg/source"
	"github.com/hellenic-development/figma-tokens/pkg/tokens"
)

// Version is the pipeline release version, reported by the CLI.
const Version = "0.3.0"

// DefaultOutDir is where artifacts land when Options.OutDir is empty.
const DefaultOutDir = "design-tokens"

// Options configures one extraction run.
type Options struct {
	Source     source.Source           // where the design data comes from
	OutDir     string                  // artifact directory, default DefaultOutDir
	Stories    bool                    // also emit the Storybook swatch page
	Keys       tokens.KeyStrategy      // nil = deterministic content-hash keys
	Categorize tokens.CategorizeConfig // zero value = default keyword buckets
	SetVersion int                     // version stamped into token metadata
	Logger     Logger                  // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the extraction output.
type Result struct {
	Set     *tokens.Set
	Palette *tokens.Palette
	Files   []string // artifact paths written by Run
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Extract runs the pipeline up to a categorized token set without writing
// anything. Secondary lookups (published styles, variables) degrade
// gracefully: their failure logs a warning and extraction continues with what
// the document tree alone provides.
func Extract(ctx context.Context, opts Options) (*tokens.Set, *tokens.Palette, error) {
	if opts.Source == nil {
		return nil, nil, fmt.Errorf("figmatokens: Source is required")
	}

	opts.logInfo("Fetching document from %s...", opts.Source.Describe())
	root, err := opts.Source.Document(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document: %w", err)
	}

	set := tokens.NewSet()
	set.Colors = tokens.ExtractColors(root, opts.Keys)
	opts.logInfo("Extracted %d colors from the document tree", len(set.Colors))

	published, err := opts.Source.PublishedColors(ctx)
	if err != nil {
		opts.logWarn("Published styles unavailable, using walked colors only: %v", err)
	} else if len(published) > 0 {
		tokens.MergePublished(set.Colors, published)
		opts.logInfo("Merged %d published styles", len(published))
	}

	set.Typography = tokens.ExtractTypography(root)
	opts.logInfo("Extracted %d typography styles", len(set.Typography))

	vars, err := opts.Source.Variables(ctx)
	if err != nil {
		opts.logWarn("Variables unavailable, continuing without spacing: %v", err)
	} else {
		set.Spacing = tokens.CopySpacing(vars)
	}

	set.Metadata = tokens.Metadata{
		Generated: time.Now().UTC(),
		Source:    opts.Source.Describe(),
		Version:   opts.SetVersion,
	}

	cfg := opts.Categorize
	if len(cfg.Rules) == 0 {
		cfg = tokens.DefaultCategorizeConfig()
	}

	return set, tokens.Categorize(set.Colors, cfg), nil
}

// Run executes the full pipeline and writes every artifact under OutDir.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		opts.OutDir = DefaultOutDir
	}

	set, palette, err := Extract(ctx, opts)
	if err != nil {
		return nil, err
	}

	e := &emitter.Emitter{OutDir: opts.OutDir, Stories: opts.Stories}
	files, err := e.Write(set, palette)
	if err != nil {
		return nil, err
	}
	opts.logInfo("Wrote %d artifacts to %s", len(files), opts.OutDir)

	return &Result{Set: set, Palette: palette, Files: files}, nil
}
