// Package pipeline provides the core rendering pipeline for treeoflife.
//
// This package implements the complete load → parse → layout → render
// pipeline shared by the CLI and the HTTP server. By centralizing this logic,
// both entry points validate options, log, cache and report metrics the
// same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read Newick text from a file, stdin or an http(s) URL
//  2. Parse: Turn the text into a [newick.Node] tree
//  3. Layout: Build the ordered hierarchy and compute radial positions
//  4. Render: Generate output in various formats (SVG, JSON, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "life.txt",
//	    Mode:    "variable",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	root, err := pipeline.Parse(ctx, text, "life.txt")
//	layout, err := runner.Layout(ctx, root, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/config"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatDOT      = "dot"      // Graphviz source of the node-link diagram
	FormatNodelink = "nodelink" // node-link diagram rendered by Graphviz as SVG
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT, FormatNodelink}

// PNGScale is the resolution multiplier for PNG output.
const PNGScale = 2.0

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Text takes precedence over Source.
	Source  string `json:"source,omitempty"`
	Text    string `json:"text,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	Mode        string             `json:"mode,omitempty"`
	Width       float64            `json:"width,omitempty"`
	LabelMargin float64            `json:"label_margin,omitempty"`
	Domain      radial.ColorDomain `json:"domain,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Legend  bool     `json:"legend,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      geometry.Mode
	validated bool
}

// FromConfig returns options carrying the layout and render settings of cfg.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Mode:        cfg.Mode,
		Width:       cfg.Width,
		LabelMargin: cfg.LabelMargin,
		Domain:      radial.ColorDomain(cfg.Domain),
		Legend:      cfg.Legend,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the positioned tree.
	Layout *radial.Layout

	// TextHash is the content hash of the tree notation.
	TextHash string

	// RenderID identifies this run; it is also the SVG root id and the
	// JSON render_id of freshly rendered artifacts.
	RenderID string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	Bytes      int
	LoadTime   time.Duration
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a mode name is valid. The empty string is valid
// and selects the default mode.
func ValidateMode(mode string) error {
	if _, err := geometry.ParseMode(mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "mode")
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" && o.Text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or text is required")
	}
	if o.Text != "" {
		if err := errors.ValidateTreeText([]byte(o.Text)); err != nil {
			return err
		}
	} else if err := errors.ValidateSource(o.Source); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Width == 0 {
		o.Width = config.DefaultWidth
	}
	if o.LabelMargin == 0 {
		o.LabelMargin = config.DefaultLabelMargin
	}
	if o.Domain == nil {
		o.Domain = radial.DefaultDomain()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %g", o.Width)
	}
	if o.LabelMargin < 0 || o.LabelMargin >= o.Width/2 {
		return errors.New(errors.ErrCodeInvalidInput, "label margin must be in [0, %g), got %g", o.Width/2, o.LabelMargin)
	}
	mode, err := geometry.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "mode")
	}
	o.mode = mode
	o.Mode = string(mode)
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// ParsedMode returns the validated mode. It is only meaningful after
// ValidateForLayout has succeeded.
func (o *Options) ParsedMode() geometry.Mode {
	if o.mode == "" {
		return geometry.DefaultMode
	}
	return o.mode
}

// OuterRadius is half the width.
func (o *Options) OuterRadius() float64 { return o.Width / 2 }

// InnerRadius is the radius of the deepest leaf.
func (o *Options) InnerRadius() float64 { return o.OuterRadius() - o.LabelMargin }

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Mode:        o.Mode,
		Width:       o.Width,
		LabelMargin: o.LabelMargin,
		Legend:      o.Legend,
		Domain:      domainHash(o.Domain),
	}
}

func domainHash(d radial.ColorDomain) string {
	data, _ := json.Marshal(d)
	return cache.Hash(data)
}
