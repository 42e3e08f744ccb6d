// Command treeoflife draws Newick trees as radial dendrograms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/treeoflife/internal/cli"
	tolerrors "github.com/matzehuels/treeoflife/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	root.SilenceErrors = true
	err := root.ExecuteContext(ctx)
	stop()

	code := tolerrors.ExitCode(err)
	if code != 0 && code != tolerrors.ExitInterrupt {
		fmt.Fprintln(os.Stderr, "Error:", tolerrors.UserMessage(err))
	}
	os.Exit(code)
}
