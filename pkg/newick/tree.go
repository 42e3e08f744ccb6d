package newick

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Node is a single node of a parsed Newick tree. A node is a leaf iff it
// has no children.
type Node struct {
	// Name is the label of this node. Empty means the node is unnamed.
	Name string

	// Length is the branch length between this node and its parent.
	// It is nil when the notation carries no length, and NaN when the
	// length token was not a valid number.
	Length *float64

	// Children are the ordered descendants of this node.
	Children []*Node
}

// Float returns a pointer to v, for building Length values in literals.
func Float(v float64) *float64 { return &v }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// BranchLength returns the branch length of n, treating an absent or
// non-finite length as 0.
func (n *Node) BranchLength() float64 {
	if n.Length == nil || math.IsNaN(*n.Length) || math.IsInf(*n.Length, 0) {
		return 0
	}
	return *n.Length
}

// LeafCount returns the number of leaves below n, counting n itself when it
// is a leaf.
func (n *Node) LeafCount() int {
	count := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsLeaf() {
			count++
			continue
		}
		stack = append(stack, cur.Children...)
	}
	return count
}

// String converts a tree to an indented listing with one node per line.
// Unnamed nodes print as "N/A".
func (n *Node) String() string {
	type frame struct {
		node  *Node
		depth int
	}
	var buf bytes.Buffer
	stack := []frame{{n, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name, length := f.node.Name, ""
		if name == "" {
			name = "N/A"
		}
		if f.node.Length != nil {
			length = fmt.Sprintf(" (%f)", *f.node.Length)
		}
		fmt.Fprintf(&buf, "%s%s%s\n", strings.Repeat("  ", f.depth), name, length)

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
	return buf.String()
}

// Newick returns n serialized in Newick notation, terminated by ';'.
// It panics only if n contains a label that cannot be written; use
// [Write] to get the error instead.
func (n *Node) Newick() string {
	var buf bytes.Buffer
	if err := Write(&buf, n); err != nil {
		panic(err)
	}
	return buf.String()
}

// Write serializes the tree rooted at n to w in Newick notation, followed by
// a terminating ';'. Labels containing delimiter characters or leading and
// trailing whitespace cannot be represented without quoting and are
// rejected.
func Write(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)

	type frame struct {
		node *Node
		next int
	}
	stack := []*frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if len(f.node.Children) > 0 && f.next < len(f.node.Children) {
			if f.next == 0 {
				bw.WriteByte('(')
			} else {
				bw.WriteByte(',')
			}
			child := f.node.Children[f.next]
			f.next++
			stack = append(stack, &frame{node: child})
			continue
		}

		if len(f.node.Children) > 0 {
			bw.WriteByte(')')
		}
		if err := writeLabel(bw, f.node); err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
	}

	bw.WriteByte(';')
	return bw.Flush()
}

func writeLabel(w *bufio.Writer, n *Node) error {
	if n.Name != "" {
		if strings.ContainsAny(n.Name, delimiters) || strings.TrimSpace(n.Name) != n.Name {
			return fmt.Errorf("newick: label %q cannot be written unquoted", n.Name)
		}
		w.WriteString(n.Name)
	}
	if n.Length != nil {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(*n.Length, 'g', -1, 64))
	}
	return nil
}
