package remap

import (
	"math"

	"github.com/pkg/errors"
)

// Range is the half-open set of values [Start, Start+Length).
type Range struct {
	Start  uint64
	Length uint64
}

// Empty reports whether r holds no value.
func (r Range) Empty() bool {
	return r.Length == 0
}

// Last returns the last value of a non-empty range.
func (r Range) Last() uint64 {
	return r.Start + r.Length - 1
}

func (r Range) validate() error {
	if r.Length > 0 && r.Length-1 > math.MaxUint64-r.Start {
		return errors.Wrapf(ErrRangeOverflow, "start %d, length %d", r.Start, r.Length)
	}

	return nil
}

// interval is an inclusive [lo, hi] run of values.
type interval struct {
	lo, hi uint64
}
