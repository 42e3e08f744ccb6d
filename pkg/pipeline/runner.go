package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/newick"
	"github.com/matzehuels/treeoflife/pkg/observability"
	"github.com/matzehuels/treeoflife/pkg/radial"
	"github.com/matzehuels/treeoflife/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, loader and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *source.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The loader caches fetched URLs in the same cache.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: source.New(source.WithCache(c, keyer)),
	}
}

// Execute runs the complete load → parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RenderID: "tree-" + uuid.NewString()}

	// Stage 1: Load
	loadStart := time.Now()
	text, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.TextHash = cache.Hash(text)
	result.Stats.Bytes = len(text)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Parse
	parseStart := time.Now()
	root, err := Parse(ctx, text, r.sourceName(opts))
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)

	opts.Logger.Debug("parsed tree",
		"source", r.sourceName(opts),
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.ParseTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	l, err := Layout(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.LeafCount = len(l.Leaves())

	opts.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"leaves", result.Stats.LeafCount,
		"mode", opts.Mode,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, result.TextHash, result.RenderID, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the tree notation for opts: Text when set, otherwise the
// contents of Source.
func (r *Runner) Load(ctx context.Context, opts Options) ([]byte, error) {
	if opts.Text != "" {
		return []byte(opts.Text), nil
	}
	text, err := r.Loader.Load(ctx, opts.Source, opts.Refresh)
	if err != nil {
		return nil, err
	}
	return text, errors.ValidateTreeText(text)
}

// Layout parses text and positions the tree without rendering.
func (r *Runner) Layout(ctx context.Context, text []byte, opts Options) (*radial.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	root, err := Parse(ctx, text, r.sourceName(opts))
	if err != nil {
		return nil, err
	}
	return Layout(ctx, root, opts)
}

// LayoutTree positions an already parsed tree.
func (r *Runner) LayoutTree(ctx context.Context, root *newick.Node, opts Options) (*radial.Layout, error) {
	return Layout(ctx, root, opts)
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// textHash identifies the notation the layout was computed from; an empty
// hash disables caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *radial.Layout, textHash, renderID string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	cacheable := textHash != "" && !opts.Refresh
	hooks := observability.Cache()

	// Try to get all formats from cache
	if cacheable {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(textHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, l, opts, renderID)
	if err != nil {
		return nil, false, err
	}

	if textHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(textHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "error", err)
				continue
			}
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that renders without caching.
func (r *Runner) Render(ctx context.Context, l *radial.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, "", "", opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) sourceName(opts Options) string {
	if opts.Text != "" || opts.Source == "" {
		return "text"
	}
	return source.Name(opts.Source)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
