package model

type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step independently of the type of its output.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

var (
	StartStep = &StepInfo{Type: RootStepType, Name: "start"}
	EndStep   = &StepInfo{Type: SinkStepType, Name: "end"}
)

// Step is the handle to the output of a step. The next step reads from Output.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
