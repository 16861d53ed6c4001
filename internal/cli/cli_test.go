package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-remap/pkg/remap"
)

var almanacFile = filepath.Join("testdata", "almanac.txt")

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func TestResolveSeeds(t *testing.T) {
	t.Parallel()

	for _, file := range []string{almanacFile, filepath.Join("testdata", "almanac.yaml")} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()

			out, _, err := execute(t, "resolve", file)
			require.NoError(t, err)
			assert.Equal(t, "79 -> 82\n14 -> 43\n55 -> 86\n13 -> 35\nminimum: 35\n", out)
		})
	}
}

func TestResolveValuesWithTrace(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "resolve", almanacFile, "79", "--trace")
	require.NoError(t, err)
	assert.Equal(t,
		"seed 79, soil 81, fertilizer 81, water 81, light 74, temperature 78, humidity 78, location 82\nminimum: 82\n",
		out)
}

func TestResolveStages(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "resolve", almanacFile, "98", "--terminal", "soil")
	require.NoError(t, err)
	assert.Equal(t, "98 -> 50\nminimum: 50\n", out)
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args        []string
		expectedErr error
	}{
		"invalid value": {
			args: []string{"resolve", almanacFile, "-3"},
		},
		"missing file": {
			args: []string{"resolve", filepath.Join("testdata", "missing.txt")},
		},
		"no chain": {
			args:        []string{"resolve", almanacFile, "1", "--entry", "planet"},
			expectedErr: remap.ErrNoChain,
		},
		"no file": {
			args: []string{"resolve"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tc.args...)
			require.Error(t, err)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tcs := map[string][]string{
		"default":            {},
		"split":              {"--strategy", "split", "--workers", "2"},
		"brute":              {"--strategy", "brute", "--workers", "3", "--chunk-size", "4"},
		"brute with timeout": {"--strategy", "brute", "--timeout", "1m"},
	}

	for name, flags := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, _, err := execute(t, append([]string{"search", almanacFile}, flags...)...)
			require.NoError(t, err)
			assert.Equal(t, "minimum: 46\n", out)
		})
	}
}

func TestSearchMeasure(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "search", almanacFile, "--strategy", "brute", "--chunk-size", "5", "--measure")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "minimum: 46", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "evaluate: count=6 "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "minimum: count=6 "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "units: count=0 "), lines[3])
}

func TestSearchDrawFlow(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "flow.dot")

	_, _, err := execute(t, "search", almanacFile, "--draw-flow", name)
	require.NoError(t, err)

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"start" -> "units"`)
	assert.Contains(t, string(content), `"units" -> "evaluate"`)
	assert.Contains(t, string(content), `"evaluate" -> "minimum"`)
	assert.Contains(t, string(content), `"minimum" -> "end"`)
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "search", almanacFile, "--strategy", "random")
	require.ErrorIs(t, err, remap.ErrUnknownStrategy)

	_, _, err = execute(t, "search", almanacFile, "--entry", "planet")
	require.ErrorIs(t, err, remap.ErrNoChain)
}

func TestSearchTimeout(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "wide.txt")
	require.NoError(t, os.WriteFile(name, []byte("seeds: 0 1099511627776\n\na-to-b map:\n10 0 5\n"), 0o600))

	start := time.Now()
	_, _, err := execute(t, "search", name, "--strategy", "brute", "--chunk-size", "65536", "--timeout", "20ms")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)

	out, _, err := execute(t, "search", name, "--timeout", "1m")
	require.NoError(t, err)
	assert.Equal(t, "minimum: 5\n", out)
}

func TestSearchOddSeeds(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "odd.txt")
	require.NoError(t, os.WriteFile(name, []byte("seeds: 1 2 3\n\na-to-b map:\n1 2 3\n"), 0o600))

	_, _, err := execute(t, "search", name)
	require.Error(t, err)
}

func TestDraw(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "draw", almanacFile)
	require.NoError(t, err)
	assert.Contains(t, out, "strict digraph {")
	assert.Equal(t, 7, strings.Count(out, " -> "))
	assert.NotContains(t, out, "penwidth")

	out, _, err = execute(t, "draw", almanacFile, "--value", "79")
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(out, `penwidth="3"`))
	assert.Contains(t, out, `label=<location <BR /> <FONT POINT-SIZE="12">82</FONT>>`)
}

func TestDrawOutput(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "chain.dot")

	out, stderr, err := execute(t, "draw", almanacFile, "-o", name)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "stage chain written")

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"seed" -> "soil"`)
}

func TestVerbose(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "resolve", almanacFile)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "pipeline built")

	_, stderr, err = execute(t, "resolve", almanacFile, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "pipeline built")
}
