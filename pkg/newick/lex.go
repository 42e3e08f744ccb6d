package newick

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind identifies the role of a token in the notation.
type TokenKind int

const (
	TokenLabel    TokenKind = iota // a name or a branch length
	TokenTerminal                  // ;
	TokenOpen                      // (
	TokenClose                     // )
	TokenComma                     // ,
	TokenColon                     // :
)

// tokenStart is the kind of the virtual token preceding the first one.
const tokenStart TokenKind = -1

const delimiters = ";(),:"

// Token is a single lexical element. Text is trimmed of surrounding
// whitespace; Offset is the byte offset of Text in the input.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Tokenize splits s on the delimiters ; ( ) , : and returns every delimiter
// and every non-blank run of text between delimiters as a token.
func Tokenize(s string) []Token {
	var toks []Token
	start := 0
	flush := func(end int) {
		raw := s[start:end]
		text := strings.TrimSpace(raw)
		if text == "" {
			return
		}
		lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
		toks = append(toks, Token{Kind: TokenLabel, Text: text, Offset: start + lead})
	}

	for i := 0; i < len(s); i++ {
		kind, ok := delimiterKind(s[i])
		if !ok {
			continue
		}
		flush(i)
		toks = append(toks, Token{Kind: kind, Text: s[i : i+1], Offset: i})
		start = i + 1
	}
	flush(len(s))
	return toks
}

func delimiterKind(c byte) (TokenKind, bool) {
	switch c {
	case ';':
		return TokenTerminal, true
	case '(':
		return TokenOpen, true
	case ')':
		return TokenClose, true
	case ',':
		return TokenComma, true
	case ':':
		return TokenColon, true
	}
	return 0, false
}

func (k TokenKind) String() string {
	switch k {
	case tokenStart:
		return "start of input"
	case TokenLabel:
		return "label"
	case TokenTerminal:
		return "';'"
	case TokenOpen:
		return "'('"
	case TokenClose:
		return "')'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	}
	panic(fmt.Sprintf("BUG: unknown token kind %d", int(k)))
}
