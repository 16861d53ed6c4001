package model

import "time"

// FlowOption defines the hooks an option receives from a flow.
type FlowOption interface {
	// New initialises the option when the flow is created.
	New() error

	// PrepareStep runs when a root or a normal step is added.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step pushes an element to its output.
	OnStepOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error

	// PrepareSink runs when a sink is added.
	PrepareSink(parentStep, step *StepInfo) error
	// OnSinkOutput runs every time a sink consumes an element.
	OnSinkOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
	// AfterSink runs once the sink has consumed its whole input.
	AfterSink(step *StepInfo, totalDuration time.Duration) error

	// Finish runs after the flow is finished.
	Finish() error
}
