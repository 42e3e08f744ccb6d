// Package nodelink renders a positioned tree as a traditional node-link
// diagram.
//
// # Overview
//
// This package produces left-to-right Graphviz diagrams of a [radial.Layout],
// where named nodes appear as boxes filled with their category color and
// unnamed internal nodes collapse to points. It is an alternative to the
// radial dendrogram when a flat, readable outline of the topology is
// preferred.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT text is also a render format of its own, for users who run dot
// themselves.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include branch length, angle and radius
//   - Mode: Selects which radius detailed labels show
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process through WebAssembly, so no dot binary is needed.
package nodelink
