package flow

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/flow/model"
)

// Flow is a chain of steps sharing one context.
type Flow struct {
	ctx       context.Context
	cancel    context.CancelFunc
	errcList  *errorChans
	opts      []model.FlowOption
	startTime time.Time
}

// New creates a new flow. Steps added to it stop as soon as ctx is done.
func New(ctx context.Context, opts ...model.FlowOption) (*Flow, error) {
	dCtx, cancel := context.WithCancel(ctx)
	flw := &Flow{
		ctx:       dCtx,
		cancel:    cancel,
		errcList:  &errorChans{},
		opts:      opts,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to apply flow option")
		}
	}

	return flw, nil
}

// waitForFlow waits for results from all error channels.
// It returns early on the first error.
func waitForFlow(errs ...*errorChan) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}

	return nil
}

// Run waits for every step to finish. On the first error it cancels the remaining steps and returns the error.
func (f *Flow) Run() error {
	defer f.cancel()

	err := waitForFlow(f.errcList.all()...)
	if err != nil {
		return err
	}

	for _, opt := range f.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish flow option")
		}
	}

	return nil
}
