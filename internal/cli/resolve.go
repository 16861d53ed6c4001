package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-remap/pkg/remap"
)

type resolveOpts struct {
	stageOpts
	trace bool
}

// newResolveCmd creates the resolve command. Without values it resolves the almanac seeds.
func newResolveCmd() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve <file> [values...]",
		Short: "Print the terminal value of each value and their minimum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print the value reached at every stage")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "stage to start from (default: inferred)")
	cmd.Flags().StringVar(&opts.terminal, "terminal", "", "stage to stop at (default: inferred)")

	return cmd
}

func runResolve(cmd *cobra.Command, path string, args []string, opts resolveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	alm, pipe, err := load(ctx, path, opts.stageOpts)
	if err != nil {
		return err
	}

	values := alm.Seeds
	if len(args) > 0 {
		values = make([]uint64, 0, len(args))

		for _, arg := range args {
			v, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid value %q", arg)
			}

			values = append(values, v)
		}
	}

	if len(values) == 0 {
		logger.Warn("nothing to resolve", "path", path)

		return nil
	}

	out := cmd.OutOrStdout()
	best := values[0]

	for i, v := range values {
		hops, ok := remap.Path(pipe, v, pipe.Entry(), pipe.Terminal())
		if !ok {
			return errors.Wrapf(remap.ErrNoChain, "value %d stopped at stage %s", v, hops[len(hops)-1].Stage)
		}

		last := hops[len(hops)-1].Value
		if i == 0 || last < best {
			best = last
		}

		if !opts.trace {
			fmt.Fprintf(out, "%d -> %d\n", v, last)

			continue
		}

		steps := make([]string, len(hops))
		for j, hop := range hops {
			steps[j] = fmt.Sprintf("%s %d", hop.Stage, hop.Value)
		}

		fmt.Fprintln(out, strings.Join(steps, ", "))
	}

	fmt.Fprintf(out, "minimum: %d\n", best)

	return nil
}
