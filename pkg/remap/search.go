package remap

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/askiada/go-remap/internal/autoscaler"
	"github.com/askiada/go-remap/pkg/flow"
	"github.com/askiada/go-remap/pkg/flow/model"
)

// Strategy selects how MinimumTerminalValue explores the input ranges.
type Strategy string

const (
	// StrategySplit maps whole intervals through the tables.
	StrategySplit Strategy = "split"
	// StrategyBruteForce traverses every value of every range.
	StrategyBruteForce Strategy = "brute"
)

// ctxCheckMask sets how often a brute force worker looks at its context.
const ctxCheckMask = 1<<14 - 1

// SearchOption configures a search.
type SearchOption func(s *searcher)

// WithStrategy selects the search strategy. The default is StrategySplit.
func WithStrategy(strategy Strategy) SearchOption {
	return func(s *searcher) {
		s.strategy = strategy
	}
}

// WithWorkers sets how many work units are evaluated at the same time. Zero or less means GOMAXPROCS.
func WithWorkers(n int) SearchOption {
	return func(s *searcher) {
		s.workers = n
	}
}

// WithChunkSize sets how many values a brute force worker scans per unit. Zero derives it from the ranges.
func WithChunkSize(n uint64) SearchOption {
	return func(s *searcher) {
		s.chunkSize = n
	}
}

// WithLogger sets the logger receiving debug progress. The default is log.Default().
func WithLogger(logger *log.Logger) SearchOption {
	return func(s *searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFlowOptions passes options, such as measure.FlowMeasure, to the flow running the search.
func WithFlowOptions(opts ...model.FlowOption) SearchOption {
	return func(s *searcher) {
		s.flowOpts = append(s.flowOpts, opts...)
	}
}

type searcher struct {
	pipe      *Pipeline
	entry     Stage
	terminal  Stage
	strategy  Strategy
	workers   int
	chunkSize uint64
	logger    *log.Logger
	flowOpts  []model.FlowOption

	total   uint64
	scanned atomic.Uint64
}

// MinimumTerminalValue returns the smallest terminal value reached by any value of ranges.
// It returns false when ranges hold no value. The result does not depend on the strategy,
// the number of workers or the chunk size.
func MinimumTerminalValue(ctx context.Context, p *Pipeline, ranges []Range, entry, terminal Stage, opts ...SearchOption) (uint64, bool, error) {
	if p == nil {
		return 0, false, ErrPipelineMustBeSet
	}

	srch := &searcher{
		pipe:     p,
		entry:    entry,
		terminal: terminal,
		strategy: StrategySplit,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(srch)
	}

	if srch.strategy != StrategySplit && srch.strategy != StrategyBruteForce {
		return 0, false, errors.Wrap(ErrUnknownStrategy, string(srch.strategy))
	}

	nonEmpty := make([]Range, 0, len(ranges))

	for _, r := range ranges {
		err := r.validate()
		if err != nil {
			return 0, false, err
		}

		if !r.Empty() {
			nonEmpty = append(nonEmpty, r)
			srch.total = saturatingAdd(srch.total, r.Length)
		}
	}

	if len(nonEmpty) == 0 {
		searchTotal.WithLabelValues(string(srch.strategy), "empty").Inc()

		return 0, false, nil
	}

	ctx, span := tracer.Start(ctx, "remap.MinimumTerminalValue", trace.WithAttributes(
		attribute.String("remap.strategy", string(srch.strategy)),
		attribute.Int("remap.ranges", len(nonEmpty)),
		attribute.String("remap.entry", string(entry)),
		attribute.String("remap.terminal", string(terminal)),
	))
	defer span.End()

	start := time.Now()
	best, err := srch.run(ctx, nonEmpty)
	searchDuration.WithLabelValues(string(srch.strategy)).Observe(time.Since(start).Seconds())

	if err != nil {
		searchTotal.WithLabelValues(string(srch.strategy), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return 0, false, err
	}

	searchTotal.WithLabelValues(string(srch.strategy), "found").Inc()
	span.SetAttributes(attribute.Int64("remap.minimum", int64(min(best, math.MaxInt64))))
	srch.logger.Debug("search finished", "strategy", srch.strategy, "minimum", best, "duration", time.Since(start).Round(time.Millisecond))

	return best, true, nil
}

// MinimumOfValues returns the smallest terminal value reached by any of values.
func MinimumOfValues(ctx context.Context, p *Pipeline, values []uint64, entry, terminal Stage, opts ...SearchOption) (uint64, bool, error) {
	ranges := make([]Range, len(values))
	for i, v := range values {
		ranges[i] = Range{Start: v, Length: 1}
	}

	return MinimumTerminalValue(ctx, p, ranges, entry, terminal, opts...)
}

// run evaluates the work units on a flow: the root emits units, a concurrent step reduces each
// unit to its own minimum and the sink keeps the smallest of them.
func (s *searcher) run(ctx context.Context, ranges []Range) (uint64, error) {
	scaler := autoscaler.New(autoscaler.Workers(s.workers), autoscaler.ChunkSize(s.chunkSize))
	plan := scaler.Plan(s.total)

	emit := s.emitRanges(ranges)
	evaluate := s.evaluateSplit

	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = min(workers, len(ranges))
	if s.strategy == StrategyBruteForce {
		emit = s.emitChunks(ranges, plan.ChunkSize)
		evaluate = s.evaluateScan
		workers = plan.Workers
	}

	s.logger.Debug("search started",
		"strategy", s.strategy,
		"ranges", len(ranges),
		"values", s.total,
		"workers", workers,
		"chunk_size", plan.ChunkSize)

	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, "search not started")
	}

	flw, err := flow.New(ctx, s.flowOpts...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create flow")
	}

	units, err := flow.AddRoot(flw, "units", emit)
	if err != nil {
		return 0, errors.Wrap(err, "unable to add units step")
	}

	minimums, err := flow.AddStep(flw, "evaluate", units, evaluate,
		flow.StepConcurrency[uint64](workers), flow.StepBuffer[uint64](workers))
	if err != nil {
		return 0, errors.Wrap(err, "unable to add evaluate step")
	}

	best := uint64(math.MaxUint64)

	err = flow.AddSink(flw, "minimum", minimums, func(_ context.Context, v uint64) error {
		best = min(best, v)

		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "unable to add minimum step")
	}

	err = flw.Run()
	if err != nil {
		return 0, errors.Wrap(err, "unable to run search")
	}

	return best, nil
}

func (s *searcher) emitRanges(ranges []Range) func(ctx context.Context, rootChan chan<- Range) error {
	return func(ctx context.Context, rootChan chan<- Range) error {
		for _, r := range ranges {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- r:
			}
		}

		return nil
	}
}

// emitChunks cuts every range into chunks of at most size values.
func (s *searcher) emitChunks(ranges []Range, size uint64) func(ctx context.Context, rootChan chan<- Range) error {
	return func(ctx context.Context, rootChan chan<- Range) error {
		for _, r := range ranges {
			start, remaining := r.Start, r.Length

			for remaining > 0 {
				chunk := Range{Start: start, Length: min(size, remaining)}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case rootChan <- chunk:
				}

				remaining -= chunk.Length
				if remaining > 0 {
					start += chunk.Length
				}
			}
		}

		return nil
	}
}

func (s *searcher) evaluateSplit(_ context.Context, r Range) (uint64, error) {
	unitsEvaluated.WithLabelValues(string(StrategySplit)).Inc()

	return splitMinimum(s.pipe, r, s.entry, s.terminal)
}

func (s *searcher) evaluateScan(ctx context.Context, r Range) (uint64, error) {
	unitsEvaluated.WithLabelValues(string(StrategyBruteForce)).Inc()

	best := uint64(math.MaxUint64)
	last := r.Last()

	for v := r.Start; ; v++ {
		if (v-r.Start)&ctxCheckMask == 0 {
			err := ctx.Err()
			if err != nil {
				return 0, err
			}
		}

		out, ok := Traverse(s.pipe, v, s.entry, s.terminal)
		if !ok {
			return 0, errors.Wrapf(ErrNoChain, "value %d", v)
		}

		best = min(best, out)

		if v == last {
			break
		}
	}

	valuesScanned.Add(float64(r.Length))
	scanned := s.scanned.Add(r.Length)
	s.logger.Debug("chunk scanned",
		"start", r.Start,
		"length", r.Length,
		"progress", float64(scanned)/float64(s.total))

	return best, nil
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}
