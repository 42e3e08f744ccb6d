// Package newick reads and writes trees in the Newick bracket notation.
//
// The accepted grammar is:
//
//	tree     := subtree ';'
//	subtree  := leaf | internal
//	internal := '(' subtree (',' subtree)* ')' [name] [':' length]
//	leaf     := [name] [':' length]
//
// Whitespace around delimiters is insignificant. Comments and quoted
// labels are not supported.
//
// # Parsing
//
// Parsing is a two-step process. [Tokenize] splits the text on the five
// delimiters ; ( ) , : while keeping the delimiters themselves as tokens.
// The parser then walks the token stream with a cursor and an explicit
// ancestor stack, so arbitrarily deep trees never grow the call stack.
//
//	root, err := newick.ParseString("(A:1,B:2)root;")
//	if err != nil {
//	    var perr *newick.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println("bad input at byte", perr.Offset)
//	    }
//	}
//
// Structural problems (unbalanced parentheses, tokens in invalid
// positions, empty input) are reported as [*ParseError]. A branch length
// that is not a valid number is not an error: it is stored as NaN and
// [Node.BranchLength] reports it as 0.
//
// # Writing
//
// [Write] and [Node.Newick] serialize a tree back to the notation. Parsing
// the output of Write yields a structurally equal tree.
package newick
