package flow

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChans(t *testing.T) {
	t.Parallel()

	ecs := errorChans{}
	ec1 := &errorChan{}
	ec2 := &errorChan{}
	doneChan := make(chan struct{}, 2)

	go func() {
		ecs.add(ec1)

		doneChan <- struct{}{}
	}()

	go func() {
		ecs.add(ec2)

		doneChan <- struct{}{}
	}()

	<-doneChan
	<-doneChan
	assert.ElementsMatch(t, []*errorChan{ec1, ec2}, ecs.all())
}

func TestNewErrorChan(t *testing.T) {
	t.Parallel()

	ec1 := newErrorChan("error chan", nil)
	assert.Equal(t, &errorChan{name: "error chan"}, ec1)

	c2 := make(chan error)
	ec2 := newErrorChan("error chan 2", c2)
	assert.Equal(t, &errorChan{name: "error chan 2", c: c2}, ec2)
}

func TestMergeErrorsAllNil(t *testing.T) {
	t.Parallel()

	outErrorChan := mergeErrors(newErrorChan("error chan", nil), newErrorChan("error chan 2", nil))
	gotErr, open := <-outErrorChan
	assert.False(t, open)
	assert.NoError(t, gotErr)
}

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
)

func TestMergeErrors(t *testing.T) {
	t.Parallel()

	chan1 := make(chan error)
	chan2 := make(chan error)

	go func() {
		defer close(chan1)
		defer close(chan2)

		chan1 <- err1
		chan2 <- err2
	}()

	outErrorChan := mergeErrors(newErrorChan("chan 1", chan1), newErrorChan("chan 2", chan2), newErrorChan("chan 3", nil))

	gotErrs := []error{}
	for err := range outErrorChan {
		gotErrs = append(gotErrs, err)
	}

	sort.Slice(gotErrs, func(i, j int) bool {
		return gotErrs[i].Error() < gotErrs[j].Error()
	})

	require.Len(t, gotErrs, 2)
	assert.ErrorIs(t, gotErrs[0], err1)
	assert.ErrorContains(t, gotErrs[0], "chan 1")
	assert.ErrorIs(t, gotErrs[1], err2)
}

func TestWaitForFlowReturnsFirstError(t *testing.T) {
	t.Parallel()

	chan1 := make(chan error, 1)
	chan1 <- err1
	close(chan1)

	err := waitForFlow(newErrorChan("chan 1", chan1), newErrorChan("chan 2", nil))
	assert.ErrorIs(t, err, err1)
}
