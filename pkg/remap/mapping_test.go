package remap_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-remap/pkg/remap"
)

func TestMapping(t *testing.T) {
	t.Parallel()

	m := remap.Mapping{SourceStart: 98, SourceEnd: 99, DestinationStart: 50}

	assert.True(t, m.Contains(98))
	assert.True(t, m.Contains(99))
	assert.False(t, m.Contains(97))
	assert.False(t, m.Contains(100))
	assert.Equal(t, uint64(51), m.Resolve(99))
	assert.Equal(t, uint64(2), m.Len())

	full := remap.Mapping{SourceStart: 0, SourceEnd: math.MaxUint64}
	assert.Equal(t, uint64(math.MaxUint64), full.Len())
}

func TestTableResolve(t *testing.T) {
	t.Parallel()

	pipe, err := remap.Build(
		[]remap.Descriptor{{Name: "a-to-b", From: "a", To: "b"}},
		map[string][]string{"a-to-b": {"50 98 2", "52 50 48"}},
	)
	require.NoError(t, err)

	table, ok := pipe.Table("a")
	require.True(t, ok)

	tcs := map[string]struct {
		value    uint64
		expected uint64
		mapped   bool
	}{
		"below every mapping":    {value: 0, expected: 0, mapped: false},
		"first value of mapping": {value: 50, expected: 52, mapped: true},
		"inside mapping":         {value: 79, expected: 81, mapped: true},
		"last value of mapping":  {value: 97, expected: 99, mapped: true},
		"second mapping start":   {value: 98, expected: 50, mapped: true},
		"second mapping end":     {value: 99, expected: 51, mapped: true},
		"above every mapping":    {value: 100, expected: 100, mapped: false},
		"largest value":          {value: math.MaxUint64, expected: math.MaxUint64, mapped: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, mapped := table.Lookup(tc.value)
			assert.Equal(t, tc.mapped, mapped)
			assert.Equal(t, tc.expected, table.Resolve(tc.value))
		})
	}
}

func TestTableResolveEveryMappedValue(t *testing.T) {
	t.Parallel()

	pipe := buildAlmanac(t)

	for _, table := range pipe.Tables() {
		for _, m := range table.Mappings {
			for v := m.SourceStart; v <= m.SourceEnd; v++ {
				assert.Equal(t, m.DestinationStart+(v-m.SourceStart), table.Resolve(v))
			}
		}
	}
}

func TestTableSortsMappings(t *testing.T) {
	t.Parallel()

	pipe := buildAlmanac(t)
	table, ok := pipe.Table(remap.StageFertilizer)
	require.True(t, ok)

	starts := make([]uint64, 0, len(table.Mappings))
	for _, m := range table.Mappings {
		starts = append(starts, m.SourceStart)
		assert.Equal(t, remap.StageFertilizer, m.From)
		assert.Equal(t, remap.StageWater, m.To)
	}

	assert.Equal(t, []uint64{0, 7, 11, 53}, starts)
}
