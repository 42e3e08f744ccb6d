package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

// layoutCommand creates the layout command for printing positioned trees.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [source]",
		Short: "Compute the radial layout of a Newick tree as JSON",
		Long: `Compute the radial layout of a Newick tree as JSON.

The output lists every node with its angle, radius, color and depth, and
every edge with its SVG path data and leaf extension. It is the same
document as 'render -f json' and is written to stdout unless -o is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), sourceArg(args), flags, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout lays out src and writes the JSON document.
func (c *CLI) runLayout(ctx context.Context, src string, flags layoutFlags, output string, noCache bool) error {
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
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = loggerFromContext(ctx)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	data := result.Artifacts[pipeline.FormatJSON]

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.LeafCount, result.CacheInfo.RenderHit)
	return nil
}
