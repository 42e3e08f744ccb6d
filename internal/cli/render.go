package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/pkg/pipeline"
	"github.com/matzehuels/treeoflife/pkg/source"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layoutFlags
	output  string   // output file path (or base path for multiple outputs); "-" writes to stdout
	formats []string // output formats: svg, json, png, pdf, dot, nodelink
	legend  bool     // draw the domain legend
	noCache bool     // bypass the artifact cache entirely
	refresh bool     // re-fetch remote sources and re-render
}

// renderCommand creates the render command for generating dendrograms.
//
// Settings not given as flags come from the config file, then the built-in
// defaults: constant mode, 954px width and a 170px label margin.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a Newick tree as a radial dendrogram",
		Long: `Render a Newick tree as a radial dendrogram.

The source is a file path, an http(s) URL or "-" for standard input
(the default).`,
		Example: `  treeoflife render life.txt
  treeoflife render life.txt -f svg,png --mode variable --legend
  curl -s https://example.com/life.txt | treeoflife render -o - > tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) != 1 {
				return fmt.Errorf("writing to stdout requires exactly one format")
			}
			return c.runRender(cmd.Context(), sourceArg(args), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot, nodelink (comma-separated)")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw the domain legend")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-fetch remote sources and ignore cached artifacts")

	return cmd
}

// runRender executes the pipeline for src and writes each artifact.
func (c *CLI) runRender(ctx context.Context, src string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.FromConfig(cfg)
	opts.apply(&popts)
	popts.Source = src
	popts.Formats = opts.formats
	popts.Legend = popts.Legend || opts.legend
	popts.Refresh = opts.refresh
	popts.Logger = logger

	toStdout := opts.output == "-"
	var spin *spinner
	if !toStdout && isTerminal(os.Stderr) {
		msg := "Rendering " + source.Name(src)
		if source.IsRemote(src) {
			msg = "Fetching " + src
		}
		spin = startSpinner(ctx, os.Stderr, msg)
	}

	watch := startStopwatch(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()
	watch.done("Rendered", "leaves", result.Stats.LeafCount, "formats", strings.Join(opts.formats, ","))

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.formats, opts.output, src)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", source.Name(src))
	printStats(result.Stats.NodeCount, result.Stats.LeafCount, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if src != source.Stdin {
		printNextStep("Explore the layout", appName+" inspect "+src)
	}
	return nil
}

// writeArtifacts writes one file per format and returns their paths in
// format order. A single format is written to output as given.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, src string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output, src)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + fileExt(format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
