package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-remap/pkg/flow/model"
)

func TestRunOneToOne(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":     {concurrent: 1},
		"sequential v2":  {concurrent: 0},
		"concurrent 2":   {concurrent: 2},
		"concurrent 100": {concurrent: 100},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flw := newTestFlow(t, t.Context())
			input := createInputStep(t, 10)
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)

				err := runOneToOne(flw.ctx, flw, input, output, func(_ context.Context, i int) (int, error) {
					return i * 2, nil
				})
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-got)
		})
	}
}

func TestRunOneToOneCancelInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":     {concurrent: 1},
		"concurrent 2":   {concurrent: 2},
		"concurrent 100": {concurrent: 100},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			flw := newTestFlow(t, t.Context())
			input := createInputStepWithCancel(t, 10, 5, cancel)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}
			done := make(chan struct{})

			go func() {
				defer close(done)

				_ = processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)

				err := runOneToOne(ctx, flw, input, output, func(ctx context.Context, i int) (int, error) {
					select {
					case <-ctx.Done():
						return 0, ctx.Err()
					default:
						return i, nil
					}
				})
				assert.ErrorIs(t, err, context.Canceled)
			}()

			<-done
		})
	}
}

func TestRunOneToOneError(t *testing.T) {
	t.Parallel()

	flw := newTestFlow(t, t.Context())
	input := createInputStep(t, 10)
	output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: 4}}
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = processOutputChan(t, output.Output)
	}()

	err := runOneToOne(flw.ctx, flw, input, output, func(_ context.Context, i int) (int, error) {
		if i == 5 {
			return 0, assert.AnError
		}

		return i, nil
	})
	close(output.Output)
	<-done

	assert.ErrorIs(t, err, assert.AnError)
}
