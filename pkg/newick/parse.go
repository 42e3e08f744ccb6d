package newick

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Sentinel causes carried by [*ParseError]. Use errors.Is to test for them.
var (
	ErrEmpty           = errors.New("empty input")
	ErrUnbalanced      = errors.New("unbalanced parentheses")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// ParseError reports a structural problem in the input. No partial tree is
// ever returned alongside a ParseError.
type ParseError struct {
	Offset int    // byte offset of the offending token, or len(input) at end of input
	Token  string // offending token text, empty at end of input
	Msg    string // human-readable detail
	Err    error  // one of ErrEmpty, ErrUnbalanced, ErrUnexpectedToken
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("newick: offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("newick: offset %d near %q: %s", e.Offset, e.Token, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads all of r and parses the first tree in it.
func Parse(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses the first tree in s. Text after the first ';' is
// ignored. Input consisting only of whitespace or a bare ';' yields an empty
// root node.
func ParseString(s string) (*Node, error) {
	if len(s) == 0 {
		return nil, &ParseError{Msg: "no tree notation", Err: ErrEmpty}
	}
	p := &parser{toks: Tokenize(s), end: len(s)}
	return p.tree()
}

// ParseAll parses every ';'-terminated tree in s, in order. The first error
// aborts parsing and no trees are returned.
func ParseAll(s string) ([]*Node, error) {
	if len(s) == 0 {
		return nil, &ParseError{Msg: "no tree notation", Err: ErrEmpty}
	}
	p := &parser{toks: Tokenize(s), end: len(s)}
	var trees []*Node
	for p.pos < len(p.toks) {
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

type parser struct {
	toks []Token
	pos  int
	end  int
}

// tree consumes tokens up to and including the next ';' (or the end of the
// stream) and returns the tree they describe.
func (p *parser) tree() (*Node, error) {
	root := &Node{}
	cur := root
	var ancestors []*Node
	prev := tokenStart

	for ; p.pos < len(p.toks); p.pos++ {
		tok := p.toks[p.pos]
		if prev == TokenColon && tok.Kind != TokenLabel {
			return nil, unexpected(tok, "missing branch length after ':'")
		}

		switch tok.Kind {
		case TokenOpen:
			if prev != tokenStart && prev != TokenOpen && prev != TokenComma {
				return nil, unexpected(tok, fmt.Sprintf("'(' may not follow %s", prev))
			}
			child := &Node{}
			cur.Children = []*Node{child}
			ancestors = append(ancestors, cur)
			cur = child

		case TokenComma:
			if len(ancestors) == 0 {
				return nil, unexpected(tok, "',' outside of a descendant list")
			}
			child := &Node{}
			parent := ancestors[len(ancestors)-1]
			parent.Children = append(parent.Children, child)
			cur = child

		case TokenClose:
			if len(ancestors) == 0 {
				return nil, &ParseError{Offset: tok.Offset, Token: tok.Text, Msg: "')' without matching '('", Err: ErrUnbalanced}
			}
			cur = ancestors[len(ancestors)-1]
			ancestors = ancestors[:len(ancestors)-1]

		case TokenColon:
			if cur.Length != nil {
				return nil, unexpected(tok, "node already has a branch length")
			}

		case TokenLabel:
			switch prev {
			case tokenStart, TokenOpen, TokenClose, TokenComma:
				cur.Name = tok.Text
			case TokenColon:
				cur.Length = parseLength(tok.Text)
			default:
				return nil, unexpected(tok, "label not preceded by a delimiter")
			}

		case TokenTerminal:
			if len(ancestors) > 0 {
				return nil, &ParseError{Offset: tok.Offset, Token: tok.Text, Msg: fmt.Sprintf("%d unclosed '('", len(ancestors)), Err: ErrUnbalanced}
			}
			p.pos++
			return root, nil
		}
		prev = tok.Kind
	}

	if prev == TokenColon {
		return nil, &ParseError{Offset: p.end, Msg: "missing branch length at end of input", Err: ErrUnexpectedToken}
	}
	if len(ancestors) > 0 {
		return nil, &ParseError{Offset: p.end, Msg: fmt.Sprintf("%d unclosed '(' at end of input", len(ancestors)), Err: ErrUnbalanced}
	}
	return root, nil
}

// parseLength never fails: malformed and infinite numbers become NaN and are
// coerced to 0 by consumers through Node.BranchLength.
func parseLength(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		v = math.NaN()
	}
	return &v
}

func unexpected(tok Token, msg string) *ParseError {
	return &ParseError{Offset: tok.Offset, Token: tok.Text, Msg: msg, Err: ErrUnexpectedToken}
}
