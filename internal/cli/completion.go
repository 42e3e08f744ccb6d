package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [" + strings.Join(completionShells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for treeoflife and print it to stdout.

  $ source <(treeoflife completion bash)
  $ treeoflife completion zsh > "${fpath[1]}/_treeoflife"
  $ treeoflife completion fish > ~/.config/fish/completions/treeoflife.fish
  PS> treeoflife completion powershell | Out-String | Invoke-Expression

Completions cover subcommands, --mode values and --format lists.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeMode offers the branch length modes for --mode.
func completeMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(geometry.ModeConstant) + "\tleaves aligned on one ring",
		string(geometry.ModeVariable) + "\tradius follows branch length",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last element of a comma-separated format
// list, skipping formats already named.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, _ := splitLastComma(toComplete)
	seen := make(map[string]bool)
	if done != "" {
		for _, f := range parseFormats(done) {
			seen[f] = true
		}
	}

	var out []string
	for _, f := range pipeline.ValidFormats {
		if seen[f] {
			continue
		}
		if done == "" {
			out = append(out, f)
		} else {
			out = append(out, done+","+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// splitLastComma splits "svg,pn" into "svg" and "pn".
func splitLastComma(s string) (head, tail string) {
	i := strings.LastIndexByte(s, ',')
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}
