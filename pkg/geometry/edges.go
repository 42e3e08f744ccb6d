package geometry

import (
	"fmt"

	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Mode selects how node radii are interpreted.
type Mode string

const (
	// ModeConstant places nodes at their cluster radius (cladogram).
	ModeConstant Mode = "constant"
	// ModeVariable places nodes at their scaled cumulative length (phylogram).
	ModeVariable Mode = "variable"
)

// DefaultMode is the mode a tree is first drawn in.
const DefaultMode = ModeConstant

// ParseMode parses a mode name. The empty string selects DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return DefaultMode, nil
	case ModeConstant, ModeVariable:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode: %q (must be one of: constant, variable)", s)
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == ModeVariable {
		return ModeConstant
	}
	return ModeVariable
}

// Radius returns the radius of n under mode m.
func (m Mode) Radius(n radial.Node) float64 {
	if m == ModeVariable {
		return n.Radius
	}
	return n.ClusterRadius
}

// Edge is the geometry of one parent-child link.
type Edge struct {
	Source    int    `json:"source"`
	Target    int    `json:"target"`
	Color     string `json:"color,omitempty"`
	Link      Path   `json:"path"`
	Extension *Path  `json:"extension,omitempty"`
}

// IsLeafEdge reports whether the edge ends at a leaf and so has an extension.
func (e Edge) IsLeafEdge() bool { return e.Extension != nil }

// BuildLink returns the connector from source to target.
func BuildLink(source, target radial.Node, mode Mode) Path {
	return LinkStep(source.Angle, mode.Radius(source), target.Angle, mode.Radius(target))
}

// BuildExtension returns the segment from target out to outerRadius along
// target's angle.
func BuildExtension(target radial.Node, outerRadius float64, mode Mode) Path {
	return LinkStep(target.Angle, mode.Radius(target), target.Angle, outerRadius)
}

// Build returns one edge per non-root node of l, in pre-order of the
// target. Every leaf edge carries an extension to l.OuterRadius, even when
// the leaf already sits on the outer ring.
func Build(l *radial.Layout, mode Mode) []Edge {
	if len(l.Nodes) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(l.Nodes)-1)
	for _, n := range l.Nodes[1:] {
		e := Edge{
			Source: n.Parent,
			Target: n.ID,
			Color:  n.Color,
			Link:   BuildLink(l.Nodes[n.Parent], n, mode),
		}
		if n.Leaf {
			ext := BuildExtension(n, l.OuterRadius(), mode)
			e.Extension = &ext
		}
		edges = append(edges, e)
	}
	return edges
}
