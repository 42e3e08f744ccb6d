package sink

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/hierarchy"
	"github.com/matzehuels/treeoflife/pkg/newick"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

func layoutOf(t *testing.T, s string, inner float64) *radial.Layout {
	t.Helper()
	root, err := newick.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", s, err)
	}
	return radial.Compute(hierarchy.Build(root), inner, radial.DefaultDomain())
}

const sample = "((Homo_sapiens:1,Pan:2)Eukaryota:1,E_coli:3)Root;"

func TestRenderSVG_Structure(t *testing.T) {
	l := layoutOf(t, sample, 100)
	svg := string(RenderSVG(l, WithRenderID("tree-test")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" id="tree-test" viewBox="-270 -270 540 540" width="540" height="540"`) {
		t.Errorf("RenderSVG() header = %q", strings.SplitN(svg, "\n", 2)[0])
	}
	if got := strings.Count(svg, `class="link"`); got != 4 {
		t.Errorf("links = %d, want 4", got)
	}
	if got := strings.Count(svg, `class="link-extension"`); got != 3 {
		t.Errorf("extensions = %d, want 3", got)
	}
	if got := strings.Count(svg, `class="label"`); got != 3 {
		t.Errorf("labels = %d, want 3", got)
	}
	if !strings.Contains(svg, ">Homo sapiens</text>") {
		t.Error("RenderSVG() should show underscores as spaces")
	}
	if !strings.Contains(svg, `document.getElementById("tree-test")`) {
		t.Error("RenderSVG() script should bind to the svg id")
	}
	if strings.Contains(svg, `class="legend"`) {
		t.Error("RenderSVG() should omit the legend by default")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() output not terminated")
	}
}

func TestRenderSVG_LinkColors(t *testing.T) {
	l := layoutOf(t, sample, 100)
	svg := string(RenderSVG(l))
	eukaryota, _ := l.Domain.Lookup("Eukaryota")

	// Eukaryota and its two children inherit the category color; E_coli has
	// no category and keeps the group stroke.
	if got := strings.Count(svg, `stroke="`+eukaryota+`"`); got != 3 {
		t.Errorf("links stroked %s = %d, want 3", eukaryota, got)
	}
	if got := strings.Count(svg, `stroke="`); got != 3+2 {
		t.Errorf("stroke attributes = %d, want 5 (3 links + 2 groups)", got)
	}
}

var dRe = regexp.MustCompile(`class="link" data-node="(\d+)" data-parent="\d+" d="([^"]+)"(?: stroke="[^"]*")? data-constant="([^"]+)" data-variable="([^"]+)"`)

func TestRenderSVG_Modes(t *testing.T) {
	l := layoutOf(t, sample, 100)

	for _, mode := range []geometry.Mode{geometry.ModeConstant, geometry.ModeVariable} {
		t.Run(string(mode), func(t *testing.T) {
			svg := string(RenderSVG(l, WithMode(mode)))
			if !strings.Contains(svg, `data-mode="`+string(mode)+`"`) {
				t.Errorf("RenderSVG() missing data-mode=%s", mode)
			}
			matches := dRe.FindAllStringSubmatch(svg, -1)
			if len(matches) != 4 {
				t.Fatalf("matched %d links, want 4", len(matches))
			}
			edges := geometry.Build(l, mode)
			for i, m := range matches {
				d, constant, variable := m[2], m[3], m[4]
				if d != edges[i].Link.String() {
					t.Errorf("link %s d = %s, want %s", m[1], d, edges[i].Link)
				}
				want := constant
				if mode == geometry.ModeVariable {
					want = variable
				}
				if d != want {
					t.Errorf("link %s d = %s, want data-%s %s", m[1], d, mode, want)
				}
			}
		})
	}
}

func TestRenderSVG_Static(t *testing.T) {
	l := layoutOf(t, sample, 100)
	svg := string(RenderSVG(l, WithStatic()))

	if strings.Contains(svg, "<script") {
		t.Error("static SVG should not contain a script")
	}
	if strings.Contains(svg, "data-constant") || strings.Contains(svg, "data-variable") {
		t.Error("static SVG should not carry alternate paths")
	}
}

func TestRenderSVG_Legend(t *testing.T) {
	l := layoutOf(t, sample, 100)
	svg := string(RenderSVG(l, WithLegend(), WithLabelMargin(50)))

	for i, c := range l.Domain {
		want := `<rect width="18" height="18" fill="` + c.Color + `"/><text x="24" y="9" dy="0.35em">` + c.Name + `</text>`
		if !strings.Contains(svg, want) {
			t.Errorf("legend entry %d missing: %s", i, want)
		}
	}
	if !strings.Contains(svg, `translate(-150,-130)`) {
		t.Error("second legend entry should sit 20px below the corner")
	}
}

func TestRenderSVG_WithoutLabels(t *testing.T) {
	l := layoutOf(t, sample, 100)
	if svg := string(RenderSVG(l, WithoutLabels())); strings.Contains(svg, `class="label"`) {
		t.Error("WithoutLabels() should omit labels")
	}
}

func TestRenderSVG_Escaping(t *testing.T) {
	l := layoutOf(t, "(A&B,<C>);", 100)
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, ">A&amp;B</text>") || !strings.Contains(svg, ">&lt;C&gt;</text>") {
		t.Error("RenderSVG() should escape label text")
	}
}

func TestRenderSVG_SingleNode(t *testing.T) {
	l := layoutOf(t, "A;", 100)
	svg := string(RenderSVG(l))
	if strings.Contains(svg, `class="link"`) {
		t.Error("single node tree should have no links")
	}
	if got := strings.Count(svg, `class="label"`); got != 1 {
		t.Errorf("labels = %d, want 1", got)
	}
}

func TestRenderSVG_RandomID(t *testing.T) {
	l := layoutOf(t, sample, 100)
	a, b := string(RenderSVG(l)), string(RenderSVG(l))
	if a == b {
		t.Error("each render should get a distinct id")
	}
	if !strings.Contains(a, `id="tree-`) {
		t.Error("random id should carry the tree- prefix")
	}
}

func TestLabelTransform(t *testing.T) {
	tests := []struct {
		angle      float64
		transform  string
		wantAnchor string
	}{
		{90, "rotate(0) translate(104,0)", "start"},
		{0, "rotate(-90) translate(104,0)", "start"},
		{179.5, "rotate(89.5) translate(104,0)", "start"},
		{180, "rotate(90) translate(104,0) rotate(180)", "end"},
		{270, "rotate(180) translate(104,0) rotate(180)", "end"},
	}
	for _, tt := range tests {
		transform, anchor := LabelTransform(tt.angle, 100)
		if transform != tt.transform || anchor != tt.wantAnchor {
			t.Errorf("LabelTransform(%v) = %q, %q; want %q, %q", tt.angle, transform, anchor, tt.transform, tt.wantAnchor)
		}
	}
}

func TestLabelText(t *testing.T) {
	if got := LabelText("Homo_sapiens_neanderthalensis"); got != "Homo sapiens neanderthalensis" {
		t.Errorf("LabelText() = %q", got)
	}
}
