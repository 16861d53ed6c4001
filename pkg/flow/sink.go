package flow

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/flow/model"
)

// AddSink adds the last step of the flow. sinkFn is called sequentially for every element of input.
func AddSink[I any](flw *Flow, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if flw == nil {
		return ErrFlowMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	step := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}

	for _, opt := range flw.opts {
		err := opt.PrepareSink(input.Details, step)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare sink function")
		}
	}

	errC := make(chan error, 1)
	flw.errcList.add(newErrorChan(name, errC))

	go func() {
		defer close(errC)

		err := runSink(flw, input, step, sinkFn)
		if err != nil {
			errC <- err
		}
	}()

	return nil
}

func runSink[I any](flw *Flow, input *model.Step[I], step *model.StepInfo, sinkFn func(ctx context.Context, input I) error) error {
	for {
		start := time.Now()
		select {
		case <-flw.ctx.Done():
			return flw.ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				for _, opt := range flw.opts {
					err := opt.AfterSink(step, time.Since(flw.startTime))
					if err != nil {
						return errors.Wrap(err, "unable to run after sink function")
					}
				}

				return nil
			}

			startFn := time.Now()

			err := sinkFn(flw.ctx, in)
			if err != nil {
				return err
			}

			endFn := time.Since(startFn)

			for _, opt := range flw.opts {
				err := opt.OnSinkOutput(input.Details, step, time.Since(start)-endFn, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run sink output function")
				}
			}
		}
	}
}
