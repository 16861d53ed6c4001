package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-remap/pkg/flow/drawer"
	"github.com/askiada/go-remap/pkg/flow/measure"
	"github.com/askiada/go-remap/pkg/flow/model"
	"github.com/askiada/go-remap/pkg/remap"
)

// searchOpts holds the flags of the search command.
type searchOpts struct {
	stageOpts
	strategy  string
	workers   int
	chunkSize uint64
	timeout   time.Duration
	measure   bool   // print per-step timings
	drawFlow  string // DOT file of the search flow
}

func newSearchCmd() *cobra.Command {
	opts := searchOpts{strategy: string(remap.StrategySplit)}

	cmd := &cobra.Command{
		Use:   "search <file>",
		Short: "Print the minimum terminal value over the seed ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", opts.strategy, "search strategy: split or brute")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "number of workers (default: GOMAXPROCS)")
	cmd.Flags().Uint64Var(&opts.chunkSize, "chunk-size", 0, "values per brute force chunk (default: derived)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the search after this duration (0 means no timeout)")
	cmd.Flags().BoolVar(&opts.measure, "measure", false, "print the timings of every search step")
	cmd.Flags().StringVar(&opts.drawFlow, "draw-flow", "", "write the search flow as a DOT graph to this file")
	cmd.Flags().StringVar(&opts.entry, "entry", "", "stage to start from (default: inferred)")
	cmd.Flags().StringVar(&opts.terminal, "terminal", "", "stage to stop at (default: inferred)")

	return cmd
}

func runSearch(cmd *cobra.Command, path string, opts searchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	alm, pipe, err := load(ctx, path, opts.stageOpts)
	if err != nil {
		return err
	}

	ranges, err := alm.SeedRanges()
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	searchOptions := []remap.SearchOption{
		remap.WithStrategy(remap.Strategy(opts.strategy)),
		remap.WithWorkers(opts.workers),
		remap.WithChunkSize(opts.chunkSize),
		remap.WithLogger(logger),
	}

	var msr measure.Measure
	if opts.measure || opts.drawFlow != "" {
		msr = measure.NewDefaultMeasure()
		searchOptions = append(searchOptions, remap.WithFlowOptions(measure.FlowMeasure(msr)))
	}

	if opts.drawFlow != "" {
		file, err := os.Create(opts.drawFlow)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", opts.drawFlow)
		}
		defer file.Close()

		searchOptions = append(searchOptions, remap.WithFlowOptions(drawer.FlowDrawer(drawer.NewDOTDrawer(file), msr)))
	}

	prg := newProgress(logger)

	best, found, err := remap.MinimumTerminalValue(ctx, pipe, ranges, pipe.Entry(), pipe.Terminal(), searchOptions...)
	if err != nil {
		return errors.Wrap(err, "search failed")
	}

	prg.done("search finished", "strategy", opts.strategy, "ranges", len(ranges))

	out := cmd.OutOrStdout()
	if !found {
		fmt.Fprintln(out, "no value")
	} else {
		fmt.Fprintf(out, "minimum: %d\n", best)
	}

	if opts.measure {
		printMeasure(out, msr)
	}

	return nil
}

func printMeasure(out io.Writer, msr measure.Measure) {
	all := msr.AllMetrics()

	names := make([]string, 0, len(all))
	for name := range all {
		if name != model.StartStep.Name {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	for _, name := range names {
		mt := all[name]
		fmt.Fprintf(out, "%s: count=%d avg=%s total=%s\n", name, mt.Count(), mt.AVGDuration(), mt.GetTotalDuration())
	}
}
