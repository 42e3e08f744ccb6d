// Package render converts computed tree geometry into output documents.
//
// # Overview
//
// Rendering sits strictly downstream of layout: it consumes a
// [radial.Layout] and the [geometry.Edge] paths built from it and never
// feeds back into them. It provides:
//
//   - Rasterization of any SVG to PDF or PNG ([Rasterizer])
//   - The radial dendrogram (in the [sink] subpackage)
//   - Graphviz node-link diagrams of the hierarchy (in [nodelink])
//
// # Rasterization
//
// [ToPDF] and [ToPNG] pipe SVG through the external rsvg-convert tool
// (from librsvg) and stop it when ctx is cancelled:
//
//	svg := sink.RenderSVG(layout, sink.WithLegend())
//	png, err := render.ToPNG(ctx, svg, 2)
//
// Use a [Rasterizer] directly to pick another binary or PNG background.
//
// [radial.Layout]: github.com/matzehuels/treeoflife/pkg/radial.Layout
// [geometry.Edge]: github.com/matzehuels/treeoflife/pkg/geometry.Edge
// [sink]: github.com/matzehuels/treeoflife/pkg/render/sink
// [nodelink]: github.com/matzehuels/treeoflife/pkg/render/nodelink
package render
