package newick

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	root, err := ParseString("(A:1,B:2);")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if root.Name != "" || root.Length != nil {
		t.Errorf("root = {%q %v}, want unnamed without length", root.Name, root.Length)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	a, b := root.Children[0], root.Children[1]
	if a.Name != "A" || a.BranchLength() != 1 {
		t.Errorf("first child = {%q %v}, want {A 1}", a.Name, a.BranchLength())
	}
	if b.Name != "B" || b.BranchLength() != 2 {
		t.Errorf("second child = {%q %v}, want {B 2}", b.Name, b.BranchLength())
	}
}

func TestParseNamesDecorateParentAfterClose(t *testing.T) {
	root, err := ParseString("((X,Y)C:0.5)ROOT;")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if root.Name != "ROOT" {
		t.Errorf("root name = %q, want ROOT", root.Name)
	}
	c := root.Children[0]
	if c.Name != "C" || c.BranchLength() != 0.5 {
		t.Errorf("inner = {%q %v}, want {C 0.5}", c.Name, c.BranchLength())
	}
	if len(c.Children) != 2 || c.Children[0].Name != "X" || c.Children[1].Name != "Y" {
		t.Errorf("inner children = %v, want X, Y", c.Children)
	}
}

func TestParseHomininae(t *testing.T) {
	root, err := ParseString("(Homo:6.65,Pan:6.65)Homininae:2.41;")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if root.Name != "Homininae" || root.BranchLength() != 2.41 {
		t.Errorf("root = {%q %v}, want {Homininae 2.41}", root.Name, root.BranchLength())
	}
	if got := root.LeafCount(); got != 2 {
		t.Errorf("LeafCount() = %d, want 2", got)
	}
}

func TestParseDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		children int
	}{
		{"bare terminal", ";", 0},
		{"whitespace only", "  \n ", 0},
		{"empty descendant list", "();", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.input, err)
			}
			if len(root.Children) != tt.children {
				t.Errorf("children = %d, want %d", len(root.Children), tt.children)
			}
			if root.Name != "" {
				t.Errorf("root name = %q, want empty", root.Name)
			}
		})
	}
}

func TestParseMalformedLength(t *testing.T) {
	root, err := ParseString("(A:abc,B:1);")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	a := root.Children[0]
	if a.Length == nil || !math.IsNaN(*a.Length) {
		t.Fatalf("A length = %v, want NaN", a.Length)
	}
	if a.BranchLength() != 0 {
		t.Errorf("BranchLength() = %v, want 0", a.BranchLength())
	}
}

func TestParseInfiniteLength(t *testing.T) {
	for _, length := range []string{"inf", "-inf", "+Infinity"} {
		root, err := ParseString("(A:" + length + ",B:1);")
		if err != nil {
			t.Fatalf("ParseString: %v", err)
		}
		a := root.Children[0]
		if a.Length == nil || !math.IsNaN(*a.Length) {
			t.Errorf("%s: A length = %v, want NaN", length, a.Length)
		}
		if a.BranchLength() != 0 {
			t.Errorf("%s: BranchLength() = %v, want 0", length, a.BranchLength())
		}
	}
	n := &Node{Length: Float(math.Inf(1))}
	if n.BranchLength() != 0 {
		t.Errorf("BranchLength() of +Inf = %v, want 0", n.BranchLength())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"missing close and terminal", "(A,B", ErrUnbalanced},
		{"missing close", "((A,B);", ErrUnbalanced},
		{"extra close", "(A,B));", ErrUnbalanced},
		{"close first", ")A;", ErrUnbalanced},
		{"comma at top level", "A,B;", ErrUnexpectedToken},
		{"open after name", "A(B);", ErrUnexpectedToken},
		{"open after close", "(A)(B);", ErrUnexpectedToken},
		{"length without number", "(A:,B);", ErrUnexpectedToken},
		{"trailing colon", "(A,B):", ErrUnexpectedToken},
		{"two lengths", "(A:1:2);", ErrUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) = %v, want error", tt.input, root)
			}
			if root != nil {
				t.Errorf("ParseString(%q) returned a partial tree", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v does not wrap %v", err, tt.want)
			}
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := ParseString("(A,B))")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Offset != 5 || perr.Token != ")" {
		t.Errorf("error at {%d %q}, want {5 \")\"}", perr.Offset, perr.Token)
	}
	if !strings.Contains(perr.Error(), "offset 5") {
		t.Errorf("Error() = %q, want it to mention the offset", perr.Error())
	}
}

func TestParseIgnoresTextAfterTerminal(t *testing.T) {
	root, err := ParseString("(A,B)X;(C,D)Y;")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if root.Name != "X" {
		t.Errorf("root name = %q, want X", root.Name)
	}
}

func TestParseAll(t *testing.T) {
	trees, err := ParseAll("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;\n")
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("ParseAll returned %d trees, want 2", len(trees))
	}
	if got := trees[0].LeafCount(); got != 4 {
		t.Errorf("first tree has %d leaves, want 4", got)
	}
	if got := trees[1].LeafCount(); got != 3 {
		t.Errorf("second tree has %d leaves, want 3", got)
	}

	if _, err := ParseAll("(A,B);(C"); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("ParseAll with broken second tree: err = %v, want ErrUnbalanced", err)
	}
}

func TestParseDeepTree(t *testing.T) {
	const depth = 100000
	input := strings.Repeat("(", depth) + "leaf" + strings.Repeat(")", depth) + ";"
	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	n, levels := root, 0
	for !n.IsLeaf() {
		n = n.Children[0]
		levels++
	}
	if levels != depth || n.Name != "leaf" {
		t.Errorf("walked %d levels to %q, want %d levels to leaf", levels, n.Name, depth)
	}
}
