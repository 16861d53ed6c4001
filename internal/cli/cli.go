// Package cli implements the remap command-line interface.
//
// The commands load an almanac (text, TOML or YAML), build its pipeline and then:
//   - resolve: print the terminal value of single values
//   - search: print the minimum terminal value over the seed ranges
//   - draw: write the stage chain as a DOT graph
//
// All commands support --verbose (-v) for debug-level logging. The logger is passed
// through context.Context.
package cli

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the remap CLI with the process arguments.
func Execute(ctx context.Context, stdout, stderr io.Writer) error {
	return newRootCmd(stdout, stderr).ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "remap",
		Short:         "Remap values through a chain of interval tables",
		Long:          `remap resolves values through a chain of stage tables, each mapping source intervals to destination intervals by a constant offset, and finds the smallest value reachable at the last stage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}

			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newDrawCmd())

	return root
}
