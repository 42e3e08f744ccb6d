package radial

import (
	"math"

	"github.com/matzehuels/treeoflife/pkg/hierarchy"
)

// Degrees is the angular extent of the layout.
const Degrees = 360.0

// NoParent is the Parent value of the root node.
const NoParent = -1

// Node is a positioned node. IDs are pre-order indices into Layout.Nodes.
type Node struct {
	ID            int     `json:"id"`
	Parent        int     `json:"parent"`
	Children      []int   `json:"children,omitempty"`
	Name          string  `json:"name,omitempty"`
	Length        float64 `json:"length"`
	Cumulative    float64 `json:"cumulative"`
	Angle         float64 `json:"angle"`
	Radius        float64 `json:"radius"`
	ClusterRadius float64 `json:"cluster_radius"`
	Color         string  `json:"color,omitempty"`
	Depth         int     `json:"depth"`
	Leaf          bool    `json:"leaf"`
}

// Layout is the positioned tree. Nodes[0] is the root.
type Layout struct {
	Nodes       []Node      `json:"nodes"`
	InnerRadius float64     `json:"inner_radius"`
	MaxLength   float64     `json:"max_length"`
	Scale       float64     `json:"scale"`
	Domain      ColorDomain `json:"domain"`
}

// Compute lays out the hierarchy rooted at root so that its deepest
// cumulative branch length reaches innerRadius.
func Compute(root *hierarchy.Node, innerRadius float64, domain ColorDomain) *Layout {
	l := &Layout{
		Nodes:       make([]Node, root.Count()),
		InnerRadius: innerRadius,
		Domain:      domain,
	}

	root.Walk(func(h *hierarchy.Node) {
		n := Node{
			ID:     h.Index,
			Parent: NoParent,
			Name:   h.Name(),
			Depth:  h.Depth,
			Leaf:   h.IsLeaf(),
		}
		if h.Parent != nil {
			n.Parent = h.Parent.Index
			n.Length = h.Data.BranchLength()
		}
		if !n.Leaf {
			n.Children = make([]int, len(h.Children))
			for i, c := range h.Children {
				n.Children[i] = c.Index
			}
		}
		l.Nodes[h.Index] = n
	})

	l.assignAngles(root)
	l.MaxLength = MaxLength(root)
	if l.MaxLength > 0 {
		l.Scale = innerRadius / l.MaxLength
	}
	l.assignRadii()
	l.assignColors()
	return l
}

// assignAngles is a cluster layout of size [Degrees, InnerRadius] with a
// constant separation of 1 between adjacent leaves.
func (l *Layout) assignAngles(root *hierarchy.Node) {
	leaves := root.Leaves()
	n := float64(len(leaves))
	x := make([]float64, len(l.Nodes))
	for i, leaf := range leaves {
		x[leaf.Index] = float64(i)
	}
	root.WalkPost(func(h *hierarchy.Node) {
		if h.IsLeaf() {
			return
		}
		sum := 0.0
		for _, c := range h.Children {
			sum += x[c.Index]
		}
		x[h.Index] = sum / float64(len(h.Children))
	})

	rootHeight := float64(root.Height)
	root.Walk(func(h *hierarchy.Node) {
		node := &l.Nodes[h.Index]
		node.Angle = (x[h.Index] + 0.5) / n * Degrees
		if rootHeight > 0 {
			node.ClusterRadius = (1 - float64(h.Height)/rootHeight) * l.InnerRadius
		}
	})
}

// assignRadii relies on Nodes being in pre-order, so parents precede their
// children.
func (l *Layout) assignRadii() {
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if n.Parent != NoParent {
			n.Cumulative = l.Nodes[n.Parent].Cumulative + n.Length
		}
		n.Radius = n.Cumulative * l.Scale
	}
}

func (l *Layout) assignColors() {
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if c, ok := l.Domain.Lookup(n.Name); ok {
			n.Color = c
		} else if n.Parent != NoParent {
			n.Color = l.Nodes[n.Parent].Color
		}
	}
}

// MaxLength returns the largest cumulative branch length from root to any
// node. The root's own length is ignored and NaN lengths count as 0.
func MaxLength(root *hierarchy.Node) float64 {
	deepest := make(map[*hierarchy.Node]float64)
	root.WalkPost(func(h *hierarchy.Node) {
		below := 0.0
		if !h.IsLeaf() {
			below = math.Inf(-1)
			for _, c := range h.Children {
				below = max(below, deepest[c])
			}
		}
		own := 0.0
		if h != root {
			own = h.Data.BranchLength()
		}
		deepest[h] = own + below
	})
	return deepest[root]
}

// Root returns the root node.
func (l *Layout) Root() Node { return l.Nodes[0] }

// Leaves returns the leaf nodes in traversal order.
func (l *Layout) Leaves() []Node {
	var leaves []Node
	for _, n := range l.Nodes {
		if n.Leaf {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Ancestors returns the ids of id and each of its ancestors up to the root.
func (l *Layout) Ancestors(id int) []int {
	var chain []int
	for cur := id; cur != NoParent; cur = l.Nodes[cur].Parent {
		chain = append(chain, cur)
	}
	return chain
}

// OuterRadius is the common ring every leaf extension reaches.
func (l *Layout) OuterRadius() float64 { return l.InnerRadius }
