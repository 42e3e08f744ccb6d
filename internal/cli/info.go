package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

const uncategorized = "(uncategorized)"

// infoCommand creates the info command for summarizing a tree.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		flags   layoutFlags
		noCache bool
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "info [source]",
		Short: "Summarize a Newick tree and its layout",
		Long: `Summarize a Newick tree and its layout.

Prints node and leaf counts, the deepest cumulative branch length, the
radial scale and the number of leaves per color category as Markdown.
Output is styled when stdout is a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), sourceArg(args), flags, noCache, raw)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&raw, "raw", false, "print plain Markdown even on a terminal")

	return cmd
}

func (c *CLI) runInfo(ctx context.Context, src string, flags layoutFlags, noCache, raw bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.FromConfig(cfg)
	flags.apply(&opts)
	opts.Source = src
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	text, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	l, err := runner.Layout(ctx, text, opts)
	if err != nil {
		return err
	}

	md := summarize(l).markdown(displaySource(src), opts.ParsedMode())
	if raw || !isTerminal(os.Stdout) {
		fmt.Print(md)
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Print(out)
	return nil
}

// categoryCount is the number of leaves drawn in one category's color.
type categoryCount struct {
	Name   string
	Color  string
	Leaves int
}

// summary holds the figures printed by the info command.
type summary struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	MaxLength  float64
	Scale      float64
	Radius     float64
	Categories []categoryCount
}

func summarize(l *radial.Layout) summary {
	s := summary{
		Nodes:     len(l.Nodes),
		MaxLength: l.MaxLength,
		Scale:     l.Scale,
		Radius:    l.InnerRadius,
	}

	counts := make(map[string]int, len(l.Domain)+1)
	for _, n := range l.Nodes {
		s.MaxDepth = max(s.MaxDepth, n.Depth)
		if !n.Leaf {
			continue
		}
		s.Leaves++
		counts[leafCategory(l, n.ID)]++
	}

	for _, cat := range l.Domain {
		if counts[cat.Name] > 0 {
			s.Categories = append(s.Categories, categoryCount{cat.Name, cat.Color, counts[cat.Name]})
		}
	}
	if counts[uncategorized] > 0 {
		s.Categories = append(s.Categories, categoryCount{Name: uncategorized, Leaves: counts[uncategorized]})
	}
	return s
}

// leafCategory returns the nearest category named on the path from id to
// the root.
func leafCategory(l *radial.Layout, id int) string {
	for _, a := range l.Ancestors(id) {
		name := l.Nodes[a].Name
		if _, ok := l.Domain.Lookup(name); ok {
			return name
		}
	}
	return uncategorized
}

func (s summary) markdown(src string, mode geometry.Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", src)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Nodes | %d |\n", s.Nodes)
	fmt.Fprintf(&b, "| Leaves | %d |\n", s.Leaves)
	fmt.Fprintf(&b, "| Max depth | %d |\n", s.MaxDepth)
	fmt.Fprintf(&b, "| Max length | %s |\n", geometry.FormatNumber(s.MaxLength))
	fmt.Fprintf(&b, "| Scale | %s |\n", geometry.FormatNumber(s.Scale))
	fmt.Fprintf(&b, "| Inner radius | %s |\n", geometry.FormatNumber(s.Radius))
	fmt.Fprintf(&b, "| Branch mode | %s |\n", mode)

	if len(s.Categories) > 0 {
		b.WriteString("\n## Categories\n\n| Category | Color | Leaves |\n|---|---|---|\n")
		for _, c := range s.Categories {
			color := c.Color
			if color == "" {
				color = "-"
			}
			fmt.Fprintf(&b, "| %s | `%s` | %d |\n", c.Name, color, c.Leaves)
		}
	}
	return b.String()
}

func displaySource(src string) string {
	if src == "-" {
		return "stdin"
	}
	return src
}
