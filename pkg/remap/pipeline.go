package remap

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-remap/internal/store"
)

// Pipeline is an immutable chain of tables. Tables live in a flat slice and are found by stage through an index.
type Pipeline struct {
	tables   []Table
	index    map[Stage]int
	entry    Stage
	terminal Stage
}

// BuildOption configures Build.
type BuildOption func(b *builder)

// WithEntry sets the entry stage instead of inferring it from the descriptors.
func WithEntry(stage Stage) BuildOption {
	return func(b *builder) {
		b.entry = stage
	}
}

// WithTerminal sets the terminal stage instead of inferring it from the descriptors.
func WithTerminal(stage Stage) BuildOption {
	return func(b *builder) {
		b.terminal = stage
	}
}

type builder struct {
	entry    Stage
	terminal Stage
	graph    graph.Graph[Stage, Stage]
}

func stageHash(s Stage) Stage {
	return s
}

// Build creates a Pipeline with one table per descriptor. rowsByName holds, for each descriptor name,
// text rows of the form "destination_start source_start length".
func Build(descriptors []Descriptor, rowsByName map[string][]string, opts ...BuildOption) (*Pipeline, error) {
	if len(descriptors) == 0 {
		return nil, ErrNoStages
	}

	bld := &builder{
		graph: graph.NewWithStore(stageHash, store.NewOrderedStore[Stage, Stage](), graph.Directed(), graph.PreventCycles()),
	}
	for _, opt := range opts {
		opt(bld)
	}

	pipe := &Pipeline{
		tables: make([]Table, 0, len(descriptors)),
		index:  make(map[Stage]int, len(descriptors)),
	}

	declared := make(map[string]struct{}, len(descriptors))

	for _, desc := range descriptors {
		if _, ok := declared[desc.Name]; ok {
			return nil, errors.Wrap(ErrDuplicateName, desc.Name)
		}

		declared[desc.Name] = struct{}{}

		if _, ok := pipe.index[desc.From]; ok {
			return nil, errors.Wrapf(ErrDuplicateStage, "%s: stage %s", desc.Name, desc.From)
		}

		err := bld.link(desc)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to link %s", desc.Name)
		}

		table, err := newTable(desc, rowsByName[desc.Name])
		if err != nil {
			return nil, errors.Wrapf(err, "unable to build %s", desc.Name)
		}

		pipe.index[desc.From] = len(pipe.tables)
		pipe.tables = append(pipe.tables, table)
	}

	names := make([]string, 0, len(rowsByName))
	for name := range rowsByName {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if _, ok := declared[name]; !ok {
			return nil, errors.Wrap(ErrUnknownSection, name)
		}
	}

	pipe.entry, pipe.terminal = bld.ends(pipe)

	return pipe, nil
}

func (b *builder) link(desc Descriptor) error {
	for _, stage := range []Stage{desc.From, desc.To} {
		err := b.graph.AddVertex(stage)
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return errors.Wrapf(err, "unable to add stage %s", stage)
		}
	}

	err := b.graph.AddEdge(desc.From, desc.To)
	if errors.Is(err, graph.ErrEdgeCreatesCycle) {
		return errors.Wrapf(ErrStageCycle, "%s -> %s", desc.From, desc.To)
	}

	if err != nil {
		return errors.Wrapf(err, "unable to add link %s -> %s", desc.From, desc.To)
	}

	return nil
}

// ends infers the entry and terminal stages: the first source that is never a successor
// and the first successor that is never a source.
func (b *builder) ends(pipe *Pipeline) (Stage, Stage) {
	entry, terminal := b.entry, b.terminal

	successors := make(map[Stage]struct{}, len(pipe.tables))
	for _, table := range pipe.tables {
		successors[table.To] = struct{}{}
	}

	if entry == "" {
		entry = pipe.tables[0].From

		for _, table := range pipe.tables {
			if _, ok := successors[table.From]; !ok {
				entry = table.From

				break
			}
		}
	}

	if terminal == "" {
		terminal = pipe.tables[len(pipe.tables)-1].To

		for _, table := range pipe.tables {
			if _, ok := pipe.index[table.To]; !ok {
				terminal = table.To

				break
			}
		}
	}

	return entry, terminal
}

// ParseRow parses "destination_start source_start length" into a Mapping between from and to.
func ParseRow(row string, from, to Stage) (Mapping, error) {
	fields := strings.Fields(row)
	if len(fields) != 3 {
		return Mapping{}, errors.Wrapf(ErrMalformedRow, "got %d fields in %q", len(fields), row)
	}

	values := [3]uint64{}

	for i, field := range fields {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return Mapping{}, errors.Wrapf(ErrMalformedRow, "field %d of %q: %s", i, row, err)
		}

		values[i] = v
	}

	destination, source, length := values[0], values[1], values[2]
	if length == 0 {
		return Mapping{}, errors.Wrapf(ErrEmptyMapping, "row %q", row)
	}

	if length-1 > math.MaxUint64-source || length-1 > math.MaxUint64-destination {
		return Mapping{}, errors.Wrapf(ErrMappingOverflow, "row %q", row)
	}

	return Mapping{
		SourceStart:      source,
		SourceEnd:        source + length - 1,
		DestinationStart: destination,
		From:             from,
		To:               to,
	}, nil
}

func newTable(desc Descriptor, rows []string) (Table, error) {
	table := Table{
		From:     desc.From,
		To:       desc.To,
		Mappings: make([]Mapping, 0, len(rows)),
	}

	for i, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}

		mapping, err := ParseRow(row, desc.From, desc.To)
		if err != nil {
			return Table{}, errors.Wrapf(err, "row %d", i)
		}

		table.Mappings = append(table.Mappings, mapping)
	}

	sort.Slice(table.Mappings, func(i, j int) bool {
		return table.Mappings[i].SourceStart < table.Mappings[j].SourceStart
	})

	for i := 1; i < len(table.Mappings); i++ {
		prev, curr := table.Mappings[i-1], table.Mappings[i]
		if prev.overlaps(curr) {
			return Table{}, errors.Wrapf(ErrOverlappingMappings, "[%d, %d] and [%d, %d]",
				prev.SourceStart, prev.SourceEnd, curr.SourceStart, curr.SourceEnd)
		}
	}

	return table, nil
}

// Entry returns the stage where traversals start by default.
func (p *Pipeline) Entry() Stage {
	return p.entry
}

// Terminal returns the stage where traversals end by default.
func (p *Pipeline) Terminal() Stage {
	return p.terminal
}

// Table returns the table that converts values of stage.
func (p *Pipeline) Table(stage Stage) (*Table, bool) {
	idx, ok := p.index[stage]
	if !ok {
		return nil, false
	}

	return &p.tables[idx], true
}

// Tables returns the tables in declaration order. The returned tables must not be modified.
func (p *Pipeline) Tables() []Table {
	return p.tables
}
