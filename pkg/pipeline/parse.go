package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/newick"
	"github.com/matzehuels/treeoflife/pkg/observability"
)

// Parse parses the first tree in text. name identifies the text in hooks
// and error messages. Structural errors are reported with code
// [errors.ErrCodeParse] and keep the [*newick.ParseError] in their chain.
func Parse(ctx context.Context, text []byte, name string) (*newick.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, name)
	start := time.Now()

	root, err := newick.ParseString(string(text))
	if err != nil {
		var perr *newick.ParseError
		if stderrors.As(err, &perr) {
			err = errors.Wrap(errors.ErrCodeParse, perr, "parse %s", name)
		} else {
			err = errors.Wrap(errors.ErrCodeInternal, err, "parse %s", name)
		}
		hooks.OnParseComplete(ctx, name, 0, time.Since(start), err)
		return nil, err
	}

	hooks.OnParseComplete(ctx, name, root.LeafCount(), time.Since(start), nil)
	return root, nil
}
