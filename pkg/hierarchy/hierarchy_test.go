package hierarchy

import (
	"strings"
	"testing"

	"github.com/matzehuels/treeoflife/pkg/newick"
)

func mustBuild(t *testing.T, s string) *Node {
	t.Helper()
	root, err := newick.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", s, err)
	}
	return Build(root)
}

func names(nodes []*Node) string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return strings.Join(out, ",")
}

func TestBuildValues(t *testing.T) {
	h := mustBuild(t, "((A,B,C)X,(D)Y,E)R;")
	if h.Value != 5 {
		t.Errorf("root Value = %d, want 5", h.Value)
	}
	if h.Height != 2 {
		t.Errorf("root Height = %d, want 2", h.Height)
	}
	for _, l := range h.Leaves() {
		if l.Value != 1 || l.Height != 0 {
			t.Errorf("leaf %s: Value=%d Height=%d, want 1 and 0", l.Name(), l.Value, l.Height)
		}
	}
	if got := h.Count(); got != 8 {
		t.Errorf("Count() = %d, want 8", got)
	}
}

func TestBuildSortsByLeafCount(t *testing.T) {
	h := mustBuild(t, "((A,B,C)X,(D)Y,E)R;")
	if got := names(h.Children); got != "Y,E,X" {
		t.Errorf("children = %s, want Y,E,X", got)
	}
	if got := names(h.Leaves()); got != "D,E,A,B,C" {
		t.Errorf("leaves = %s, want D,E,A,B,C", got)
	}
}

func TestBuildSortsByLengthOnTie(t *testing.T) {
	h := mustBuild(t, "(A:3,B:1,C:2);")
	if got := names(h.Children); got != "B,C,A" {
		t.Errorf("children = %s, want B,C,A", got)
	}
}

func TestBuildKeepsInputOrderOnFullTie(t *testing.T) {
	h := mustBuild(t, "(D:1,A:1,C:1,B:1,E,F:0);")
	// E has no length and F has length 0; both compare as 0 and precede the rest.
	if got := names(h.Children); got != "E,F,D,A,C,B" {
		t.Errorf("children = %s, want E,F,D,A,C,B", got)
	}
}

func TestBuildNaNLengthSortsAsZero(t *testing.T) {
	h := mustBuild(t, "(A:2,B:x,C:1);")
	if got := names(h.Children); got != "B,C,A" {
		t.Errorf("children = %s, want B,C,A", got)
	}
}

func TestBuildIndexIsPreOrder(t *testing.T) {
	h := mustBuild(t, "((A,B)X,C)R;")
	var got []int
	h.Walk(func(n *Node) { got = append(got, n.Index) })
	for i, idx := range got {
		if idx != i {
			t.Fatalf("pre-order indices = %v, want 0..%d", got, len(got)-1)
		}
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	root, _ := newick.ParseString("(A:3,B:1);")
	Build(root)
	if root.Children[0].Name != "A" {
		t.Errorf("Build reordered the newick tree")
	}
}

func TestAncestors(t *testing.T) {
	h := mustBuild(t, "(((A)X)Y)Z;")
	leaf := h.Leaves()[0]
	if got := names(leaf.Ancestors()); got != "A,X,Y,Z" {
		t.Errorf("Ancestors() = %s, want A,X,Y,Z", got)
	}
	if h.Parent != nil {
		t.Errorf("root has a parent")
	}
}

func TestLinks(t *testing.T) {
	h := mustBuild(t, "((A,B)X,C)R;")
	links := h.Links()
	var pairs []string
	for _, l := range links {
		pairs = append(pairs, l.Source.Name()+">"+l.Target.Name())
	}
	if got := strings.Join(pairs, " "); got != "R>C R>X X>A X>B" {
		t.Errorf("Links() = %s, want R>C R>X X>A X>B", got)
	}
}

func TestBuildDegenerate(t *testing.T) {
	h := mustBuild(t, ";")
	if !h.IsLeaf() || h.Value != 1 || h.Height != 0 {
		t.Errorf("empty root: leaf=%v Value=%d Height=%d", h.IsLeaf(), h.Value, h.Height)
	}
	if len(h.Links()) != 0 {
		t.Errorf("empty root has links")
	}
}

func TestBuildDeepTree(t *testing.T) {
	const depth = 50000
	input := strings.Repeat("(", depth) + "leaf" + strings.Repeat(")", depth) + ";"
	h := mustBuild(t, input)
	if h.Height != depth {
		t.Errorf("Height = %d, want %d", h.Height, depth)
	}
	if got := h.Leaves(); len(got) != 1 || got[0].Depth != depth {
		t.Errorf("deep leaf not found at depth %d", depth)
	}
}
