// Package sink renders a radial tree layout into output documents.
//
// # Overview
//
// A "sink" transforms a computed [radial.Layout] into a final output
// format:
//
//   - SVG: the radial dendrogram with legend, labels and hover script
//   - JSON: positioned nodes and edge paths for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws, in order, the optional legend, one faint extension
// per leaf out to the label ring, one link per parent-child edge stroked
// in the target's category color, and one rotated label per leaf.
// Interactive documents carry both the constant and the variable path of
// every link in data attributes, and an embedded script that
//
//   - highlights a label's extension and its whole ancestor chain on hover
//   - exposes setMode("constant" | "variable") on the svg element
//
// For example:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithMode(geometry.ModeVariable),
//	    sink.WithLegend(),
//	)
//
// [WithStatic] drops the script and data attributes for documents that
// will be rasterized.
//
// # JSON Output
//
// [RenderJSON] exports node angles and radii for one mode together with the
// SVG path data of every edge.
//
// [radial.Layout]: github.com/matzehuels/treeoflife/pkg/radial.Layout
package sink
