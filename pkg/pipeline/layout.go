package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/treeoflife/pkg/hierarchy"
	"github.com/matzehuels/treeoflife/pkg/newick"
	"github.com/matzehuels/treeoflife/pkg/observability"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Layout builds the ordered hierarchy of root and positions it for the
// radius and domain in opts. The newick tree is not modified, so the same
// root can be laid out again with different options.
func Layout(ctx context.Context, root *newick.Node, opts Options) (*radial.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	h := hierarchy.Build(root)
	mode := string(opts.ParsedMode())

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, mode, h.Count())
	start := time.Now()

	l := radial.Compute(h, opts.InnerRadius(), opts.Domain)

	hooks.OnLayoutComplete(ctx, mode, time.Since(start), nil)
	return l, nil
}
