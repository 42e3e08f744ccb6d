package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// DefaultLabelMargin is the space between the inner radius and the edge of
// the document, reserved for leaf labels.
const DefaultLabelMargin = 170.0

const (
	labelOffset  = 4.0
	legendSwatch = 18
	legendStep   = 20
)

const treeCSS = `
    .link--active { stroke: #000 !important; stroke-width: 1.5px; }
    .link-extension--active { stroke-opacity: .6; }
    .label--active { font-weight: bold; }`

const treeJS = `
    (function(root) {
      function find(cls, id) { return root.querySelector('.' + cls + '[data-node="' + id + '"]'); }
      function chain(id, active) {
        var ext = find('link-extension', id);
        if (ext) { ext.classList.toggle('link-extension--active', active); ext.parentNode.appendChild(ext); }
        for (var link = find('link', id); link; link = find('link', link.dataset.parent)) {
          link.classList.toggle('link--active', active);
          link.parentNode.appendChild(link);
        }
      }
      root.querySelectorAll('.label').forEach(function(label) {
        label.addEventListener('mouseenter', function() { label.classList.add('label--active'); chain(label.dataset.node, true); });
        label.addEventListener('mouseleave', function() { label.classList.remove('label--active'); chain(label.dataset.node, false); });
      });
      root.setMode = function(mode) {
        root.dataset.mode = mode;
        root.querySelectorAll('path[data-' + mode + ']').forEach(function(p) { p.setAttribute('d', p.getAttribute('data-' + mode)); });
      };
    })(document.getElementById(%q));`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	mode        geometry.Mode
	labelMargin float64
	legend      bool
	labels      bool
	static      bool
	renderID    string
}

// WithMode selects the initial radius mode (default constant).
func WithMode(m geometry.Mode) SVGOption { return func(r *svgRenderer) { r.mode = m } }

// WithLabelMargin sets the label ring width (default 170).
func WithLabelMargin(m float64) SVGOption { return func(r *svgRenderer) { r.labelMargin = m } }

// WithLegend draws one swatch per color domain category in the top-left corner.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithoutLabels omits leaf labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithStatic omits the hover script and the alternate-mode path data.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithRenderID sets the id of the svg element. A random id is used otherwise.
func WithRenderID(id string) SVGOption { return func(r *svgRenderer) { r.renderID = id } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{mode: geometry.DefaultMode, labelMargin: DefaultLabelMargin, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.renderID == "" {
		r.renderID = "tree-" + uuid.NewString()
	}
	return r
}

// RenderSVG draws l as a radial dendrogram. The document is square, centered
// on the root, with a side of 2 * (l.InnerRadius + label margin).
func RenderSVG(l *radial.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	outer := l.InnerRadius + r.labelMargin
	width := 2 * outer

	primary := geometry.Build(l, r.mode)
	var alternate []geometry.Edge
	if !r.static {
		alternate = geometry.Build(l, r.mode.Other())
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="%s %s %s %s" width="%s" height="%s" font-family="sans-serif" font-size="10" data-mode="%s">`+"\n",
		EscapeXML(r.renderID), num(-outer), num(-outer), num(width), num(width), num(width), num(width), r.mode)

	if r.legend {
		renderLegend(&buf, l.Domain, outer)
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", treeCSS)
	renderExtensions(&buf, &r, primary, alternate)
	renderLinks(&buf, &r, primary, alternate)
	if r.labels {
		renderLabels(&buf, l)
	}
	if !r.static {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(treeJS, r.renderID))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLegend(buf *bytes.Buffer, domain radial.ColorDomain, outer float64) {
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, c := range domain {
		fmt.Fprintf(buf, `    <g transform="translate(%s,%s)"><rect width="%d" height="%d" fill="%s"/><text x="24" y="9" dy="0.35em">%s</text></g>`+"\n",
			num(-outer), num(-outer+float64(i*legendStep)), legendSwatch, legendSwatch, EscapeXML(c.Color), EscapeXML(c.Name))
	}
	buf.WriteString("  </g>\n")
}

func renderExtensions(buf *bytes.Buffer, r *svgRenderer, primary, alternate []geometry.Edge) {
	buf.WriteString(`  <g class="link-extensions" fill="none" stroke="#000" stroke-opacity="0.25">` + "\n")
	for i, e := range primary {
		if e.Extension == nil {
			continue
		}
		fmt.Fprintf(buf, `    <path class="link-extension" data-node="%d" d="%s"`, e.Target, e.Extension)
		if alternate != nil {
			writeModePaths(buf, r.mode, e.Extension.String(), alternate[i].Extension.String())
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderLinks(buf *bytes.Buffer, r *svgRenderer, primary, alternate []geometry.Edge) {
	buf.WriteString(`  <g class="links" fill="none" stroke="#000">` + "\n")
	for i, e := range primary {
		fmt.Fprintf(buf, `    <path class="link" data-node="%d" data-parent="%d" d="%s"`, e.Target, e.Source, e.Link)
		if e.Color != "" {
			fmt.Fprintf(buf, ` stroke="%s"`, EscapeXML(e.Color))
		}
		if alternate != nil {
			writeModePaths(buf, r.mode, e.Link.String(), alternate[i].Link.String())
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("  </g>\n")
}

func writeModePaths(buf *bytes.Buffer, mode geometry.Mode, current, other string) {
	constant, variable := current, other
	if mode == geometry.ModeVariable {
		constant, variable = other, current
	}
	fmt.Fprintf(buf, ` data-constant="%s" data-variable="%s"`, constant, variable)
}

func renderLabels(buf *bytes.Buffer, l *radial.Layout) {
	buf.WriteString(`  <g class="labels">` + "\n")
	for _, n := range l.Leaves() {
		transform, anchor := LabelTransform(n.Angle, l.InnerRadius)
		fmt.Fprintf(buf, `    <text class="label" data-node="%d" dy=".31em" transform="%s" text-anchor="%s">%s</text>`+"\n",
			n.ID, transform, anchor, EscapeXML(LabelText(n.Name)))
	}
	buf.WriteString("  </g>\n")
}

// LabelTransform places a leaf label just outside innerRadius, rotated to
// its angle. Labels on the left half are flipped to stay upright.
func LabelTransform(angle, innerRadius float64) (transform, anchor string) {
	transform = fmt.Sprintf("rotate(%s) translate(%s,0)", num(angle-90), num(innerRadius+labelOffset))
	if angle < 180 {
		return transform, "start"
	}
	return transform + " rotate(180)", "end"
}

// LabelText is the display form of a node name.
func LabelText(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// EscapeXML escapes s for use in text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(v float64) string { return geometry.FormatNumber(v) }
