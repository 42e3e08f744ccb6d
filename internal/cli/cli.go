// Package cli implements the treeoflife command-line interface.
//
// This package provides commands for rendering Newick trees as radial
// dendrograms, inspecting their layout, serving them over HTTP and managing
// the artifact cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, JSON, PNG, PDF or DOT output
//   - layout: Print the positioned nodes and edges as JSON
//   - info: Summarize a tree as markdown
//   - inspect: Browse leaves and their ancestor chains interactively
//   - serve: Serve a tree and ad-hoc renders over HTTP
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-format for JSON or logfmt output. Loggers are passed through
// context.Context so pipeline stages can report progress.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/treeoflife/pkg/buildinfo"
	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/config"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
	"github.com/matzehuels/treeoflife/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "treeoflife"

// LogInfo is the level commands log at without --verbose.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	logFormat  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// loadConfig reads the --config file, or only defaults and environment
// when none was given.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped
// to the build version so an upgrade never serves stale renders.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cfg.CacheOptions()
	if opts.Backend == "" || opts.Backend == cache.BackendFile {
		dir, err := fileCacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Helpers
// =============================================================================

// sourceArg returns the source named by args, defaulting to stdin.
func sourceArg(args []string) string {
	if len(args) == 0 {
		return source.Stdin
	}
	return args[0]
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by every command that lays out a tree.
// Zero values keep the configured setting.
type layoutFlags struct {
	mode        string
	width       float64
	labelMargin float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "branch lengths: constant (default) aligns leaves, variable scales by length")
	cmd.Flags().Float64Var(&f.width, "width", 0, "figure width in pixels (default 954)")
	cmd.Flags().Float64Var(&f.labelMargin, "label-margin", 0, "space reserved for leaf labels (default 170)")
	cmd.RegisterFlagCompletionFunc("mode", completeMode)
}

// apply overrides the configured options with the flags that were set.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	if f.mode != "" {
		opts.Mode = f.mode
	}
	if f.width != 0 {
		opts.Width = f.width
	}
	if f.labelMargin != 0 {
		opts.LabelMargin = f.labelMargin
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the base output path from the output and source names.
// If output is empty, the source's base name without extension is used.
// If output has a format extension (.svg, .json, etc.), it is stripped.
func basePath(output, src string) string {
	if output == "" {
		name := "tree"
		if src != source.Stdin {
			name = source.Name(src)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
		if name == "" {
			name = "tree"
		}
		return name
	}
	ext := filepath.Ext(output)
	if err := pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// fileExt returns the file extension written for format.
func fileExt(format string) string {
	if format == pipeline.FormatNodelink {
		return "nodelink.svg"
	}
	return format
}
