package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	figmatokens "github.com/hellenic-development/figma-tokens"
	"github.com/hellenic-development/figma-tokens/pkg/emitter"
	"github.com/hellenic-development/figma-tokens/pkg/figma"
	"github.com/hellenic-development/figma-tokens/pkg/source"
	"github.com/hellenic-development/figma-tokens/pkg/syncer"
	"github.com/hellenic-development/figma-tokens/pkg/tokens"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	figmaURL        string
	fileKey         string
	accessToken     string
	inputFile       string
	mcpCommand      string
	outDir          string
	watch           bool
	autoCommit      bool
	buildCmd        string
	stories         bool
	minSyncInterval time.Duration
	watchInterval   time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-tokens",
		Short: "Extract and sync design tokens from Figma files",
		Long: "A tool that extracts design tokens (colors, typography, spacing) from Figma files\n" +
			"and keeps generated CSS, JavaScript, TypeScript and JSON artifacts in sync with the design.",
		Run: run,
	}

	rootCmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL")
	rootCmd.Flags().StringVarP(&fileKey, "file-key", "k", "", "Figma file key (alternative to --url)")
	rootCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (or FIGMA_TOKEN)")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Local exported document JSON instead of the API")
	rootCmd.Flags().StringVar(&mcpCommand, "mcp", "", "MCP server command to source design data from (e.g. \"figma-mcp --stdio\")")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", figmatokens.DefaultOutDir, "Output directory for generated artifacts")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep syncing until interrupted or 'stop' is typed (or ENABLE_WATCH)")
	rootCmd.Flags().BoolVar(&autoCommit, "auto-commit", false, "git add+commit the artifacts after each changed sync (or AUTO_COMMIT)")
	rootCmd.Flags().StringVar(&buildCmd, "build-cmd", "", "Command to run after a changed sync (e.g. \"npm run build-storybook\")")
	rootCmd.Flags().BoolVar(&stories, "stories", false, "Also generate a Storybook swatch page (or BUILD_STORYBOOK)")
	rootCmd.Flags().DurationVar(&minSyncInterval, "min-sync-interval", syncer.DefaultMinSyncInterval, "Minimum time between completed syncs")
	rootCmd.Flags().DurationVar(&watchInterval, "watch-interval", syncer.DefaultWatchInterval, "Polling cadence in watch mode")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-tokens version %s\n", figmatokens.Version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// bindEnv fills flags the user left untouched from the environment.
func bindEnv(cmd *cobra.Command) {
	viper.AutomaticEnv()
	_ = viper.BindEnv("token", "FIGMA_TOKEN")
	_ = viper.BindEnv("auto-commit", "AUTO_COMMIT")
	_ = viper.BindEnv("stories", "BUILD_STORYBOOK")
	_ = viper.BindEnv("watch", "ENABLE_WATCH")

	if accessToken == "" {
		accessToken = viper.GetString("token")
	}
	if !cmd.Flags().Changed("auto-commit") {
		autoCommit = viper.GetBool("auto-commit")
	}
	if !cmd.Flags().Changed("stories") {
		stories = viper.GetBool("stories")
	}
	if !cmd.Flags().Changed("watch") {
		watch = viper.GetBool("watch")
	}
}

func run(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Design Tokens")
	cyan.Println("=======================")
	cyan.Println()

	bindEnv(cmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := &cliLogger{}
	src, cleanup, err := buildSource(ctx)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	extract := func(ctx context.Context) (*tokens.Set, *tokens.Palette, error) {
		return figmatokens.Extract(ctx, figmatokens.Options{
			Source: src,
			Logger: logger,
		})
	}
	write := func(set *tokens.Set, palette *tokens.Palette) ([]string, error) {
		e := &emitter.Emitter{OutDir: outDir, Stories: stories}
		return e.Write(set, palette)
	}

	var buildCommand []string
	if buildCmd != "" {
		buildCommand = strings.Fields(buildCmd)
	}

	s := syncer.New(syncer.Options{
		MetadataPath:    filepath.Join(outDir, syncer.DefaultMetadataFile),
		JSONPath:        filepath.Join(outDir, emitter.JSONFile),
		Source:          src.Describe(),
		MinSyncInterval: minSyncInterval,
		WatchInterval:   watchInterval,
		AutoCommit:      autoCommit,
		BuildCommand:    buildCommand,
		Logger:          logger,
	}, extract, write)

	if !watch {
		report, err := s.RunOnce(ctx)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printReport(report)
		return
	}

	// Watch mode: the ticker drives periodic syncs; a local file source
	// additionally triggers on filesystem changes, and typing "stop" (or
	// Ctrl-C) cancels the loop.
	trigger := make(chan struct{}, 1)
	if f, ok := src.(*source.File); ok {
		go func() {
			if err := f.Watch(ctx, 0, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			}); err != nil {
				logger.Warnf("file watch unavailable: %v", err)
			}
		}()
	}

	go readStopCommand(stop)

	cyan.Println("Watching for design changes. Type 'stop' or press Ctrl-C to exit.")
	if err := s.Watch(ctx, trigger); err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("\n✨ Sync stopped.")
}

// buildSource picks the data source from the flags: a local export file, an
// MCP server, or the Figma REST API.
func buildSource(ctx context.Context) (source.Source, func(), error) {
	noop := func() {}

	if inputFile != "" {
		return source.NewFile(inputFile), noop, nil
	}

	if mcpCommand != "" {
		argv := strings.Fields(mcpCommand)
		m, err := source.NewMCP(ctx, argv[0], argv[1:]...)
		if err != nil {
			return nil, noop, fmt.Errorf("start MCP source: %w", err)
		}
		return m, func() { m.Close() }, nil
	}

	if accessToken == "" {
		return nil, noop, fmt.Errorf("a Figma access token is required (--token or FIGMA_TOKEN)")
	}

	key := fileKey
	if key == "" {
		if figmaURL == "" {
			return nil, noop, fmt.Errorf("a Figma file is required (--url or --file-key)")
		}
		var err error
		key, err = figma.ExtractFileKey(figmaURL)
		if err != nil {
			return nil, noop, fmt.Errorf("extract file key: %w", err)
		}
	}

	return source.NewAPI(figma.NewClient(accessToken), key), noop, nil
}

// readStopCommand cancels the watch loop when the user types "stop".
func readStopCommand(stop func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "stop") {
			stop()
			return
		}
	}
}

func printReport(report *syncer.Report) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📊 Sync Summary:")
	switch {
	case report.Skipped:
		fmt.Println("  • Skipped: last sync is too recent")
	case !report.Changed:
		fmt.Println("  • No token changes detected")
	default:
		fmt.Printf("  • Version: %d\n", report.Version)
		for _, f := range report.Files {
			fmt.Printf("  • Wrote %s\n", f)
		}
	}
	green.Println("\n✨ Done.")
}

// cliLogger implements figmatokens.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
