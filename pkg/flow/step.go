package flow

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-remap/pkg/flow/model"
)

func (f *Flow) onStepOutput(input, output *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range f.opts {
		err := opt.OnStepOutput(input, output, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run step output function")
		}
	}

	return nil
}

func sequentialOneToOne[I, O any](ctx context.Context, flw *Flow, goIdx int, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()

			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}

			endFn := time.Since(startFn)

			// check the context again so that running workers stop feeding the output
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- out:
				err := flw.onStepOutput(input.Details, output.Details, time.Since(start)-endFn, endFn)
				if err != nil {
					return errors.Wrapf(err, "go routine %d", goIdx)
				}
			}
		}
	}
}

func concurrentOneToOne[I, O any](ctx context.Context, flw *Flow, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)

	// each worker stops as soon as one of them fails
	for goIdx := range output.Details.Concurrent {
		errGrp.Go(func() error {
			return sequentialOneToOne(dCtx, flw, goIdx, input, output, oneToOneFn)
		})
	}

	return errGrp.Wait()
}

func runOneToOne[I, O any](ctx context.Context, flw *Flow, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	if output.Details.Concurrent <= 1 {
		output.Details.Concurrent = 1

		return sequentialOneToOne(ctx, flw, 0, input, output, oneToOneFn)
	}

	return concurrentOneToOne(ctx, flw, input, output, oneToOneFn)
}

// AddStep adds a step that turns every element of input into one element of its output.
// With StepConcurrency the output order does not follow the input order.
func AddStep[I, O any](flw *Flow, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	if flw == nil {
		return nil, ErrFlowMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	for _, opt := range flw.opts {
		err := opt.PrepareStep(input.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step function")
		}
	}

	errC := make(chan error, 1)
	flw.errcList.add(newErrorChan(name, errC))

	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()

		err := runOneToOne(flw.ctx, flw, input, step, oneToOneFn)
		if err != nil {
			errC <- err
		}
	}()

	return step, nil
}
