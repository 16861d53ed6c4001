package remap_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-remap/pkg/remap"
)

var almanacDescriptors = []remap.Descriptor{
	{Name: "seed-to-soil", From: remap.StageSeed, To: remap.StageSoil},
	{Name: "soil-to-fertilizer", From: remap.StageSoil, To: remap.StageFertilizer},
	{Name: "fertilizer-to-water", From: remap.StageFertilizer, To: remap.StageWater},
	{Name: "water-to-light", From: remap.StageWater, To: remap.StageLight},
	{Name: "light-to-temperature", From: remap.StageLight, To: remap.StageTemperature},
	{Name: "temperature-to-humidity", From: remap.StageTemperature, To: remap.StageHumidity},
	{Name: "humidity-to-location", From: remap.StageHumidity, To: remap.StageLocation},
}

var almanacRows = map[string][]string{
	"seed-to-soil":            {"50 98 2", "52 50 48"},
	"soil-to-fertilizer":      {"0 15 37", "37 52 2", "39 0 15"},
	"fertilizer-to-water":     {"49 53 8", "0 11 42", "42 0 7", "57 7 4"},
	"water-to-light":          {"88 18 7", "18 25 70"},
	"light-to-temperature":    {"45 77 23", "81 45 19", "68 64 13"},
	"temperature-to-humidity": {"0 69 1", "1 0 69"},
	"humidity-to-location":    {"60 56 37", "56 93 4"},
}

var almanacSeedRanges = []remap.Range{{Start: 79, Length: 14}, {Start: 55, Length: 13}}

func buildAlmanac(t *testing.T) *remap.Pipeline {
	t.Helper()

	pipe, err := remap.Build(almanacDescriptors, almanacRows)
	require.NoError(t, err)

	return pipe
}

// bruteMinimum is the reference: every value traversed one by one, without any worker.
func bruteMinimum(t *testing.T, pipe *remap.Pipeline, ranges []remap.Range) (uint64, bool) {
	t.Helper()

	var (
		best  uint64
		found bool
	)

	for _, r := range ranges {
		for i := range r.Length {
			out, ok := remap.Traverse(pipe, r.Start+i, pipe.Entry(), pipe.Terminal())
			require.True(t, ok)

			if !found || out < best {
				best, found = out, true
			}
		}
	}

	return best, found
}

// randomPipeline builds a chain of stages whose disjoint mappings cover parts of [0, span).
func randomPipeline(t *testing.T, rng *rand.Rand, stages int, span uint64) *remap.Pipeline {
	t.Helper()

	descriptors := make([]remap.Descriptor, stages)
	rows := make(map[string][]string, stages)

	for i := range stages {
		name := fmt.Sprintf("s%d-to-s%d", i, i+1)
		descriptors[i] = remap.Descriptor{
			Name: name,
			From: remap.Stage(fmt.Sprintf("s%d", i)),
			To:   remap.Stage(fmt.Sprintf("s%d", i+1)),
		}

		for pos := rng.Uint64N(10); pos < span; {
			length := 1 + rng.Uint64N(span/4)
			destination := rng.Uint64N(span * 2)
			rows[name] = append(rows[name], fmt.Sprintf("%d %d %d", destination, pos, length))
			pos += length + rng.Uint64N(span/8)
		}
	}

	pipe, err := remap.Build(descriptors, rows)
	require.NoError(t, err)

	return pipe
}
