package remap

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// mapInterval appends to out the images of iv through t. Parts of iv that no mapping
// contains are appended unchanged.
func (t *Table) mapInterval(iv interval, out []interval) []interval {
	lo, hi := iv.lo, iv.hi

	for idx := t.search(lo); idx < len(t.Mappings); idx++ {
		m := t.Mappings[idx]
		if m.SourceStart > hi {
			break
		}

		if lo < m.SourceStart {
			out = append(out, interval{lo: lo, hi: m.SourceStart - 1})
			lo = m.SourceStart
		}

		end := min(hi, m.SourceEnd)
		out = append(out, interval{lo: m.Resolve(lo), hi: m.Resolve(end)})

		if end == hi {
			return out
		}

		lo = end + 1
	}

	return append(out, interval{lo: lo, hi: hi})
}

// coalesce sorts ivs and merges the intervals that overlap or touch.
func coalesce(ivs []interval) []interval {
	if len(ivs) < 2 {
		return ivs
	}

	sort.Slice(ivs, func(i, j int) bool {
		return ivs[i].lo < ivs[j].lo
	})

	res := ivs[:1]

	for _, iv := range ivs[1:] {
		last := &res[len(res)-1]
		if last.hi == math.MaxUint64 || iv.lo <= last.hi+1 {
			last.hi = max(last.hi, iv.hi)

			continue
		}

		res = append(res, iv)
	}

	return res
}

// splitMinimum pushes r through every table between entry and terminal and returns the smallest value reached.
func splitMinimum(p *Pipeline, r Range, entry, terminal Stage) (uint64, error) {
	current := []interval{{lo: r.Start, hi: r.Last()}}
	stage := entry

	for hops := 0; stage != terminal; hops++ {
		table, ok := p.Table(stage)
		if !ok || hops == len(p.tables) {
			return 0, errors.Wrapf(ErrNoChain, "stopped at stage %s", stage)
		}

		next := make([]interval, 0, len(current)+len(table.Mappings))
		for _, iv := range current {
			next = table.mapInterval(iv, next)
		}

		current = coalesce(next)
		stage = table.To
	}

	return current[0].lo, nil
}
