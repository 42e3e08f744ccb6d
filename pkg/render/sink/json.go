package sink

import (
	"encoding/json"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	mode        geometry.Mode
	labelMargin float64
	renderID    string
}

// WithJSONMode selects which radius each node reports (default constant).
func WithJSONMode(m geometry.Mode) JSONOption { return func(r *jsonRenderer) { r.mode = m } }

// WithJSONLabelMargin records the label ring width in outer_radius.
func WithJSONLabelMargin(m float64) JSONOption {
	return func(r *jsonRenderer) { r.labelMargin = m }
}

// WithJSONRenderID records a render id in the output.
func WithJSONRenderID(id string) JSONOption { return func(r *jsonRenderer) { r.renderID = id } }

type jsonOutput struct {
	RenderID    string             `json:"render_id,omitempty"`
	InnerRadius float64            `json:"inner_radius"`
	OuterRadius float64            `json:"outer_radius"`
	MaxLength   float64            `json:"max_length"`
	Scale       float64            `json:"scale"`
	Mode        geometry.Mode      `json:"mode"`
	Domain      radial.ColorDomain `json:"domain"`
	Nodes       []jsonNode         `json:"nodes"`
	Edges       []geometry.Edge    `json:"edges"`
}

type jsonNode struct {
	ID     int     `json:"id"`
	Parent int     `json:"parent"` // -1 for the root
	Name   string  `json:"name,omitempty"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
	Color  string  `json:"color,omitempty"`
	Depth  int     `json:"depth"`
	Leaf   bool    `json:"leaf"`
}

// RenderJSON exports the layout under one radius mode as a pretty-printed
// JSON document. Edge paths are SVG path data strings.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify l and is safe to call concurrently.
func RenderJSON(l *radial.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{mode: geometry.DefaultMode, labelMargin: DefaultLabelMargin}
	for _, opt := range opts {
		opt(&r)
	}

	edges := geometry.Build(l, r.mode)
	if edges == nil {
		edges = []geometry.Edge{}
	}
	domain := l.Domain
	if domain == nil {
		domain = radial.ColorDomain{}
	}
	out := jsonOutput{
		RenderID:    r.renderID,
		InnerRadius: l.InnerRadius,
		OuterRadius: l.InnerRadius + r.labelMargin,
		MaxLength:   l.MaxLength,
		Scale:       l.Scale,
		Mode:        r.mode,
		Domain:      domain,
		Nodes:       buildJSONNodes(l, r.mode),
		Edges:       edges,
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONNodes(l *radial.Layout, mode geometry.Mode) []jsonNode {
	nodes := make([]jsonNode, len(l.Nodes))
	for i, n := range l.Nodes {
		nodes[i] = jsonNode{
			ID:     n.ID,
			Parent: n.Parent,
			Name:   n.Name,
			Angle:  n.Angle,
			Radius: mode.Radius(n),
			Length: n.Length,
			Color:  n.Color,
			Depth:  n.Depth,
			Leaf:   n.Leaf,
		}
	}
	return nodes
}
