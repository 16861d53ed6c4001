package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-remap/pkg/remap"
	"github.com/askiada/go-remap/pkg/remap/drawer"
)

type drawOpts struct {
	stageOpts
	output string
	value  uint64
	trace  bool
}

func newDrawCmd() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw <file>",
		Short: "Write the stage chain as a DOT graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.trace = cmd.Flags().Changed("value")

			return runDraw(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Uint64Var(&opts.value, "value", 0, "label every stage with the value this input reaches")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "stage to start from (default: inferred)")
	cmd.Flags().StringVar(&opts.terminal, "terminal", "", "stage to stop at (default: inferred)")

	return cmd
}

func runDraw(cmd *cobra.Command, path string, opts drawOpts) error {
	ctx := cmd.Context()

	_, pipe, err := load(ctx, path, opts.stageOpts)
	if err != nil {
		return err
	}

	chain, err := drawer.New(pipe)
	if err != nil {
		return errors.Wrap(err, "unable to create drawer")
	}

	if opts.trace {
		hops, ok := remap.Path(pipe, opts.value, pipe.Entry(), pipe.Terminal())
		if !ok {
			return errors.Wrapf(remap.ErrNoChain, "value %d", opts.value)
		}

		err = chain.Trace(hops)
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		return chain.Draw(cmd.OutOrStdout())
	}

	err = chain.DrawFile(opts.output)
	if err != nil {
		return err
	}

	loggerFromContext(ctx).Info("stage chain written", "path", opts.output)

	return nil
}
