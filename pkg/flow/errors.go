package flow

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrFlowMustBeSet  = errors.New("flow must be set")
	ErrInputMustBeSet = errors.New("input must be set")
)

type errorChans struct {
	mu   sync.Mutex
	list []*errorChan
}

func (ec *errorChans) add(errChan *errorChan) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.list = append(ec.list, errChan)
}

func (ec *errorChans) all() []*errorChan {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	res := make([]*errorChan, len(ec.list))
	copy(res, ec.list)

	return res
}

type errorChan struct {
	c    <-chan error
	name string
}

func newErrorChan(name string, c <-chan error) *errorChan {
	return &errorChan{
		c:    c,
		name: name,
	}
}

// mergeErrors merges multiple channels of errors.
// Based on https://blog.golang.org/pipelines.
func mergeErrors(cs ...*errorChan) <-chan error {
	var wg sync.WaitGroup
	// Every step reports at most one error, so the output never blocks even if
	// waitForFlow returns early.
	out := make(chan error, len(cs))

	output := func(c *errorChan) {
		defer wg.Done()

		if c.c == nil {
			return
		}

		for n := range c.c {
			out <- errors.Wrap(n, c.name)
		}
	}

	wg.Add(len(cs))

	for _, c := range cs {
		go output(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
