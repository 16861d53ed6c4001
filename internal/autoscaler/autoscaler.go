package autoscaler

import (
	"runtime"
)

const (
	// chunksPerWorker leaves room for workers that finish early to pick up more chunks.
	chunksPerWorker        = 8
	DefaultMinChunk uint64 = 1 << 12
	DefaultMaxChunk uint64 = 1 << 24
)

// Plan is how a scan over a number of values is spread over workers.
type Plan struct {
	Workers   int
	ChunkSize uint64
	Chunks    uint64
}

// AutoScaler sizes the chunks of a scan from the number of values and workers.
type AutoScaler struct {
	workers   int
	chunkSize uint64
	minChunk  uint64
	maxChunk  uint64
}

type Option func(a *AutoScaler)

// Workers fixes the number of workers. Zero or less means GOMAXPROCS.
func Workers(n int) Option {
	return func(a *AutoScaler) {
		a.workers = n
	}
}

// ChunkSize fixes the chunk size. Zero means the size is derived from the number of values.
func ChunkSize(n uint64) Option {
	return func(a *AutoScaler) {
		a.chunkSize = n
	}
}

// Bounds clamps derived chunk sizes to [minChunk, maxChunk].
func Bounds(minChunk, maxChunk uint64) Option {
	return func(a *AutoScaler) {
		a.minChunk = max(minChunk, 1)
		a.maxChunk = max(maxChunk, a.minChunk)
	}
}

func New(opts ...Option) *AutoScaler {
	a := &AutoScaler{
		minChunk: DefaultMinChunk,
		maxChunk: DefaultMaxChunk,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.workers <= 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}

	return a
}

// Plan returns the plan for total values. The number of workers never exceeds the number of chunks.
func (a *AutoScaler) Plan(total uint64) Plan {
	if total == 0 {
		return Plan{Workers: 1, ChunkSize: max(a.chunkSize, 1)}
	}

	size := a.chunkSize
	if size == 0 {
		size = ceilDiv(total, uint64(a.workers)*chunksPerWorker)
		size = min(max(size, a.minChunk), a.maxChunk)
	}

	chunks := ceilDiv(total, size)
	workers := a.workers

	if uint64(workers) > chunks {
		workers = int(chunks)
	}

	return Plan{
		Workers:   workers,
		ChunkSize: size,
		Chunks:    chunks,
	}
}

func ceilDiv(a, b uint64) uint64 {
	q := a / b
	if a%b != 0 {
		q++
	}

	return q
}
