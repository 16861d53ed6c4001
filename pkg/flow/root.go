package flow

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/flow/model"
)

// AddRoot adds the step that feeds the flow. stepFn must stop sending when ctx is done.
// The output is closed once stepFn returns.
func AddRoot[O any](flw *Flow, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	if flw == nil {
		return nil, ErrFlowMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.RootStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	for _, opt := range flw.opts {
		err := opt.PrepareStep(model.StartStep, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare root step function")
		}
	}

	errC := make(chan error, 1)
	flw.errcList.add(newErrorChan(name, errC))

	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()

		err := stepFn(flw.ctx, step.Output)
		if err != nil {
			errC <- err
		}
	}()

	return step, nil
}
