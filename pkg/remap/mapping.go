package remap

import (
	"math"
	"sort"
)

// Stage names a point in a Pipeline.
type Stage string

const (
	StageSeed        Stage = "seed"
	StageSoil        Stage = "soil"
	StageFertilizer  Stage = "fertilizer"
	StageWater       Stage = "water"
	StageLight       Stage = "light"
	StageTemperature Stage = "temperature"
	StageHumidity    Stage = "humidity"
	StageLocation    Stage = "location"
)

// Descriptor declares the table called Name that converts values of stage From into values of stage To.
type Descriptor struct {
	Name string
	From Stage
	To   Stage
}

// Mapping sends every value of [SourceStart, SourceEnd] to DestinationStart plus its offset from SourceStart.
type Mapping struct {
	SourceStart      uint64
	SourceEnd        uint64
	DestinationStart uint64
	From             Stage
	To               Stage
}

// Contains reports whether v lies in the source interval.
func (m Mapping) Contains(v uint64) bool {
	return m.SourceStart <= v && v <= m.SourceEnd
}

// Resolve maps v, which must be contained in m.
func (m Mapping) Resolve(v uint64) uint64 {
	return m.DestinationStart + (v - m.SourceStart)
}

// Len returns the number of values covered by m. It saturates at math.MaxUint64.
func (m Mapping) Len() uint64 {
	if m.SourceStart == 0 && m.SourceEnd == math.MaxUint64 {
		return math.MaxUint64
	}

	return m.SourceEnd - m.SourceStart + 1
}

func (m Mapping) overlaps(o Mapping) bool {
	return m.SourceStart <= o.SourceEnd && o.SourceStart <= m.SourceEnd
}

// Table holds the mappings of one stage, sorted by source start, and the stage that follows it.
type Table struct {
	From     Stage
	To       Stage
	Mappings []Mapping
}

// search returns the index of the first mapping whose source end is not below v.
func (t *Table) search(v uint64) int {
	return sort.Search(len(t.Mappings), func(i int) bool {
		return t.Mappings[i].SourceEnd >= v
	})
}

// Lookup returns the mapped value of v and true, or false when no mapping contains v.
func (t *Table) Lookup(v uint64) (uint64, bool) {
	idx := t.search(v)
	if idx == len(t.Mappings) || !t.Mappings[idx].Contains(v) {
		return 0, false
	}

	return t.Mappings[idx].Resolve(v), true
}

// Resolve returns the mapped value of v, or v itself when no mapping contains it.
func (t *Table) Resolve(v uint64) uint64 {
	if out, ok := t.Lookup(v); ok {
		return out
	}

	return v
}
