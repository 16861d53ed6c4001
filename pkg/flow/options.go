package flow

import "github.com/askiada/go-remap/pkg/flow/model"

type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets how many workers consume the input of a step.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}

// StepBuffer sets the capacity of the output channel of a step.
func StepBuffer[O any](size int) StepOption[O] {
	return func(s *model.Step[O]) {
		if size > 0 {
			s.Output = make(chan O, size)
		}
	}
}
