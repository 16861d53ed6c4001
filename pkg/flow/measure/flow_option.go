package measure

import (
	"time"

	"github.com/askiada/go-remap/pkg/flow/model"
)

type flowMeasure struct {
	Measure
}

func (fm *flowMeasure) New() error {
	fm.AddMetric(model.StartStep.Name, 1)

	return nil
}

func (fm *flowMeasure) PrepareStep(_, step *model.StepInfo) error {
	fm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (fm *flowMeasure) OnStepOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt := fm.GetMetric(step.Name)
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (fm *flowMeasure) PrepareSink(_, step *model.StepInfo) error {
	fm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (fm *flowMeasure) OnSinkOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt := fm.GetMetric(step.Name)
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (fm *flowMeasure) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	fm.GetMetric(step.Name).SetTotalDuration(totalDuration)

	return nil
}

func (fm *flowMeasure) Finish() error {
	return nil
}

// FlowMeasure returns a flow option recording the timings of every step into msr.
func FlowMeasure(msr Measure) model.FlowOption {
	return &flowMeasure{msr}
}
