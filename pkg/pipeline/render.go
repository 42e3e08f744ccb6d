package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/observability"
	"github.com/matzehuels/treeoflife/pkg/radial"
	"github.com/matzehuels/treeoflife/pkg/render"
	"github.com/matzehuels/treeoflife/pkg/render/nodelink"
	"github.com/matzehuels/treeoflife/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. renderID
// scopes the interactive SVG and is echoed in JSON output.
func Render(ctx context.Context, l *radial.Layout, opts Options, renderID string) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts, renderID)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l *radial.Layout, opts Options, renderID string) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts, renderID)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		if (format == FormatPNG || format == FormatPDF) && !render.Available() {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"%s export requires librsvg (brew install librsvg, apt install librsvg2-bin)", format)
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l,
				sink.WithJSONMode(opts.ParsedMode()),
				sink.WithJSONLabelMargin(opts.LabelMargin),
				sink.WithJSONRenderID(renderID))
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, PNGScale, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nodelinkOptions(opts)))
		case FormatNodelink:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelinkOptions(opts)))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options, renderID string) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithMode(opts.ParsedMode()),
		sink.WithLabelMargin(opts.LabelMargin),
	}
	if renderID != "" {
		svgOpts = append(svgOpts, sink.WithRenderID(renderID))
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	return svgOpts
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Mode: opts.ParsedMode()}
}
