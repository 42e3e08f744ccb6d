package nodelink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/treeoflife/pkg/hierarchy"
	"github.com/matzehuels/treeoflife/pkg/newick"
	"github.com/matzehuels/treeoflife/pkg/radial"
	"github.com/matzehuels/treeoflife/pkg/render/nodelink"
)

func ExampleToDOT() {
	root, _ := newick.ParseString("(Bacteria:2,(Archaea:1,Eukaryota:1):1);")
	l := radial.Compute(hierarchy.Build(root), 100, radial.DefaultDomain())

	dot := nodelink.ToDOT(l, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// n0 -> n1 [label="2", color="#1f77b4"];
	// n0 -> n2 [label="1"];
	// n2 -> n3 [label="1", color="#2ca02c"];
	// n2 -> n4 [label="1", color="#ff7f0e"];
}

func ExampleRenderSVG() {
	root, _ := newick.ParseString("(A,B)Root;")
	l := radial.Compute(hierarchy.Build(root), 100, nil)

	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(l, nodelink.Options{}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Output varies based on Graphviz installation
	_ = svg
}
