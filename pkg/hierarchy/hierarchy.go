// Package hierarchy converts a parsed Newick tree into an ordered,
// weighted hierarchy ready for cluster layout.
//
// Every [Node] wraps the [newick.Node] it was built from and records its
// leaf count ([Node.Value]), depth and height. Children are sorted by
// ascending leaf count, then ascending branch length, with ties keeping
// their input order, so the same input always yields the same traversal
// order.
//
// All traversals use explicit stacks; trees with tens of thousands of
// levels do not grow the goroutine stack.
package hierarchy

import (
	"cmp"
	"slices"

	"github.com/matzehuels/treeoflife/pkg/newick"
)

// Node is a node of the ordered hierarchy.
type Node struct {
	Data     *newick.Node
	Parent   *Node // nil for the root; never owns the parent
	Children []*Node

	// Value is the number of leaves below this node (1 for a leaf).
	Value int

	// Index is the position of this node in pre-order after sorting.
	Index int

	// Depth is the number of edges from the root.
	Depth int

	// Height is the number of edges to the deepest leaf below this node.
	Height int
}

// Build constructs the ordered hierarchy for root. The newick tree is not
// modified.
func Build(root *newick.Node) *Node {
	h := &Node{Data: root}
	stack := []*Node{h}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.Children = make([]*Node, len(n.Data.Children))
		for i, c := range n.Data.Children {
			child := &Node{Data: c, Parent: n, Depth: n.Depth + 1}
			n.Children[i] = child
			stack = append(stack, child)
		}
	}

	h.WalkPost(func(n *Node) {
		if n.IsLeaf() {
			n.Value = 1
			return
		}
		n.Value, n.Height = 0, 0
		for _, c := range n.Children {
			n.Value += c.Value
			n.Height = max(n.Height, c.Height+1)
		}
		slices.SortStableFunc(n.Children, compareSiblings)
	})

	i := 0
	h.Walk(func(n *Node) {
		n.Index = i
		i++
	})
	return h
}

// compareSiblings orders by leaf count, then by branch length.
func compareSiblings(a, b *Node) int {
	if c := cmp.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Data.BranchLength(), b.Data.BranchLength())
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Name returns the name of the underlying newick node.
func (n *Node) Name() string { return n.Data.Name }

// Walk calls fn for n and every descendant in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// WalkPost calls fn for every descendant of n and then n, children before
// parents.
func (n *Node) WalkPost(fn func(*Node)) {
	type frame struct {
		node *Node
		next int
	}
	stack := []*frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.node.Children) {
			stack = append(stack, &frame{node: f.node.Children[f.next]})
			f.next++
			continue
		}
		fn(f.node)
		stack = stack[:len(stack)-1]
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// Leaves returns the leaves below n in traversal order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(c *Node) {
		if c.IsLeaf() {
			leaves = append(leaves, c)
		}
	})
	return leaves
}

// Ancestors returns n followed by each of its ancestors up to the root.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// Link is a parent-child edge of the hierarchy.
type Link struct {
	Source, Target *Node
}

// Links returns every parent-child edge below n in pre-order of the target.
func (n *Node) Links() []Link {
	var links []Link
	n.Walk(func(c *Node) {
		if c != n && c.Parent != nil {
			links = append(links, Link{Source: c.Parent, Target: c})
		}
	})
	return links
}
