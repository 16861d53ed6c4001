package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-remap/pkg/flow/model"
)

func createInputStep(t *testing.T, total int) *model.Step[int] {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			inputChan <- i
		}
	}()

	return &model.Step[int]{Output: inputChan, Details: &model.StepInfo{Name: "input"}}
}

func createInputStepWithCancel(t *testing.T, total int, offset int, cancel context.CancelFunc) *model.Step[int] {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			if i == offset {
				cancel()
			}

			inputChan <- i
		}
	}()

	return &model.Step[int]{Output: inputChan, Details: &model.StepInfo{Name: "input"}}
}

func processOutputChan(t *testing.T, output <-chan int) []int {
	t.Helper()

	res := []int{}

	for out := range output {
		res = append(res, out)
	}

	return res
}

func newTestFlow(t *testing.T, ctx context.Context) *Flow {
	t.Helper()

	flw, err := New(ctx)
	require.NoError(t, err)

	return flw
}
