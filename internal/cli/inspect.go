package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   layoutFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "Browse the leaves of a tree interactively",
		Long: `Browse the leaves of a tree interactively.

Select a leaf to see its chain of ancestors with branch lengths, angles
and radii. Press m to switch between constant and variable branch
lengths.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), sourceArg(args), flags, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, src string, flags layoutFlags, noCache bool) error {
	if src == "-" {
		return errors.New("inspect needs a file or URL; stdin is used by the terminal UI")
	}
	if !isTerminal(os.Stdout) {
		return errors.New("inspect requires an interactive terminal")
	}

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

	p := tea.NewProgram(NewLeafListModel(l, opts.ParsedMode()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
