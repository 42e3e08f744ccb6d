package sink

import (
	"context"
	"slices"

	"github.com/matzehuels/treeoflife/pkg/radial"
	"github.com/matzehuels/treeoflife/pkg/render"
)

// DefaultPNGScale renders PNGs at twice the SVG size.
const DefaultPNGScale = 2.0

// RenderPNG rasterizes the static SVG of l at scale. A scale <= 0 uses
// [DefaultPNGScale]. Requires rsvg-convert.
func RenderPNG(ctx context.Context, l *radial.Layout, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return render.ToPNG(ctx, staticSVG(l, opts), scale)
}

// RenderPDF converts the static SVG of l to PDF. Requires rsvg-convert.
func RenderPDF(ctx context.Context, l *radial.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, staticSVG(l, opts))
}

// staticSVG drops the embedded script, which rasterizers ignore.
func staticSVG(l *radial.Layout, opts []SVGOption) []byte {
	return RenderSVG(l, append(slices.Clip(opts), WithStatic())...)
}
