package remap

// Hop is the value a traversal holds when it reaches Stage.
type Hop struct {
	Stage Stage
	Value uint64
}

// Traverse resolves value from the entry stage to the terminal stage.
// It returns false when the chain stops at a stage that has no table before reaching terminal.
func Traverse(p *Pipeline, value uint64, entry, terminal Stage) (uint64, bool) {
	current := entry

	// a chain visits each table at most once
	for hops := 0; current != terminal; hops++ {
		if hops == len(p.tables) {
			return 0, false
		}

		idx, ok := p.index[current]
		if !ok {
			return 0, false
		}

		table := &p.tables[idx]
		value = table.Resolve(value)
		current = table.To
	}

	return value, true
}

// Path behaves like Traverse and also records every stage reached on the way, entry and terminal included.
func Path(p *Pipeline, value uint64, entry, terminal Stage) ([]Hop, bool) {
	hops := []Hop{{Stage: entry, Value: value}}
	current := entry

	for current != terminal {
		if len(hops) > len(p.tables) {
			return hops, false
		}

		table, ok := p.Table(current)
		if !ok {
			return hops, false
		}

		value = table.Resolve(value)
		current = table.To
		hops = append(hops, Hop{Stage: current, Value: value})
	}

	return hops, true
}
