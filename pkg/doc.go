// Package pkg provides the core libraries for treeoflife radial dendrograms.
//
// # Overview
//
// Treeoflife turns a phylogenetic tree written in Newick notation into a
// radial dendrogram: leaves sit on a circle, each internal node is drawn as
// an arc spanning its children plus a radial step, and every subtree below
// a named taxonomic domain takes that domain's color. The pkg directory is
// organized into four main areas:
//
//  1. Domain logic: [newick], [hierarchy], [radial], [geometry]
//  2. Rendering: [render/sink] and [render/nodelink]
//  3. Orchestration: [pipeline] and [source]
//  4. Infrastructure: [cache], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	Newick text (file, URL or stdin)
//	         ↓
//	    [newick] package (tokenize + parse)
//	         ↓
//	    [hierarchy] package (leaf counts, sibling order)
//	         ↓
//	    [radial] package (angles, radii, colors)
//	         ↓
//	    [geometry] package (arc-and-step edge paths)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Parse, lay out and render a tree:
//
//	import (
//	    "github.com/matzehuels/treeoflife/pkg/hierarchy"
//	    "github.com/matzehuels/treeoflife/pkg/newick"
//	    "github.com/matzehuels/treeoflife/pkg/radial"
//	    "github.com/matzehuels/treeoflife/pkg/render/sink"
//	)
//
//	root, _ := newick.ParseString("((Homo:6.6,Pan:6.6):2.5,Bacteria:4);")
//	l := radial.Compute(hierarchy.Build(root), 307, radial.DefaultDomain())
//	svg := sink.RenderSVG(l, sink.WithLegend())
//
// # Main Packages
//
// [newick] - Tokenizer and parser for Newick notation, with byte offsets in
// every [newick.ParseError].
//
// [hierarchy] - Ordered hierarchy with leaf counts. Siblings sort by leaf
// count, then branch length, so the same text always yields the same drawing.
//
// [radial] - Cluster layout on a circle: leaf angles, cluster radii, scaled
// cumulative radii and inherited domain colors.
//
// [geometry] - Edge paths for constant (aligned leaves) and variable
// (length-scaled) branch modes, plus leaf extensions to the label ring.
//
// [render/sink] - SVG, JSON, PNG and PDF output.
//
// [render/nodelink] - Graphviz DOT output for debugging tree structure.
//
// [pipeline] - load → parse → layout → render, with artifact caching. Used by
// both the CLI and the HTTP server.
//
// [cache] - File, Redis and null artifact caches behind one interface.
//
// [observability] - Hooks for stage timing, cache and fetch events.
// [observability/prom] exports them as Prometheus metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/radial/...      # Specific package
//	go test -run Example ./...    # Examples only
//
// [newick]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/newick
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/hierarchy
// [radial]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/radial
// [geometry]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/geometry
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/pipeline
// [source]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/treeoflife/pkg/observability/prom
package pkg
