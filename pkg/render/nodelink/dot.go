package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes branch length, angle and radius in node labels.
	// When false, only the node name is shown.
	Detailed bool

	// Mode selects the radius shown by detailed labels.
	Mode geometry.Mode
}

// ToDOT converts a positioned tree to Graphviz DOT format, drawn left to
// right from the root. [RenderSVG] lays the result out.
//
// Nodes are filled with their category color. Unnamed internal nodes are
// drawn as small points, and edges are labelled with their branch length.
func ToDOT(l *radial.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none, fontsize=9];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts))
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range l.Nodes {
		if n.Parent == radial.NoParent {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s", nodeID(n.Parent), nodeID(n.ID))
		var attrs []string
		if n.Length != 0 {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(n.Length, 'g', 4, 64)))
		}
		if n.Color != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", n.Color))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(n radial.Node, opts Options) string {
	if !opts.Detailed {
		return n.Name
	}

	mode := opts.Mode
	if mode == "" {
		mode = geometry.DefaultMode
	}
	parts := []string{
		fmt.Sprintf("length: %g", n.Length),
		fmt.Sprintf("angle: %s", geometry.FormatNumber(n.Angle)),
		fmt.Sprintf("radius: %s", geometry.FormatNumber(mode.Radius(n))),
	}
	if n.Name == "" {
		return strings.Join(parts, "\n")
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n radial.Node, label string) []string {
	if label == "" {
		return []string{`label=""`, "shape=point", "width=0.06"}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color), "fontcolor=white")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with the embedded Graphviz and returns SVG
// sized to its view box.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
