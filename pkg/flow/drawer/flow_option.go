package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/flow/measure"
	"github.com/askiada/go-remap/pkg/flow/model"
)

type flowDrawer struct {
	Drawer
	msr       measure.Measure
	startTime time.Time
}

func (fd *flowDrawer) New() error {
	fd.startTime = time.Now()

	err := fd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}

	err = fd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (fd *flowDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := fd.AddStep(step.Name)
	if err != nil {
		return err
	}

	return fd.AddLink(parentStep.Name, step.Name)
}

func (fd *flowDrawer) PrepareSink(parentStep, step *model.StepInfo) error {
	err := fd.AddStep(step.Name)
	if err != nil {
		return err
	}

	err = fd.AddLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}

	return fd.AddLink(step.Name, model.EndStep.Name)
}

func (fd *flowDrawer) OnStepOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	return nil
}

func (fd *flowDrawer) OnSinkOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	return nil
}

func (fd *flowDrawer) AfterSink(_ *model.StepInfo, _ time.Duration) error {
	return nil
}

func (fd *flowDrawer) Finish() error {
	if fd.msr != nil {
		err := fd.SetTotalTime(model.EndStep.Name, fd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		err = fd.AddMeasure(fd.msr)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := fd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw flow")
	}

	return nil
}

// FlowDrawer returns a flow option that draws the flow once it is finished.
// When msr is set, it must also be registered on the flow, before the drawer, with measure.FlowMeasure.
func FlowDrawer(drawer Drawer, msr measure.Measure) model.FlowOption {
	return &flowDrawer{Drawer: drawer, msr: msr}
}
