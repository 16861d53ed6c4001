package almanac

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/remap"
)

const (
	seedsPrefix  = "seeds:"
	headerSuffix = " map:"
	stageLink    = "-to-"
)

// Almanac is a remapping definition: the stage descriptors, their rows and the input seeds.
type Almanac struct {
	Seeds       []uint64
	Descriptors []remap.Descriptor
	Rows        map[string][]string
}

// Parse reads the almanac text format.
func Parse(r io.Reader) (*Almanac, error) {
	alm := &Almanac{Rows: map[string][]string{}}
	current := ""

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, seedsPrefix):
			seeds, err := parseSeeds(strings.TrimPrefix(line, seedsPrefix))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}

			alm.Seeds = append(alm.Seeds, seeds...)
		case strings.HasSuffix(line, ":"):
			desc, err := parseHeader(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}

			err = alm.declare(desc)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}

			current = desc.Name
		default:
			if current == "" {
				return nil, errors.Wrapf(ErrRowOutsideSection, "line %d: %q", lineNo, line)
			}

			alm.Rows[current] = append(alm.Rows[current], line)
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read almanac")
	}

	return alm, nil
}

func parseSeeds(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	seeds := make([]uint64, 0, len(fields))

	for _, field := range fields {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSeeds, "%q: %s", field, err)
		}

		seeds = append(seeds, v)
	}

	return seeds, nil
}

// parseHeader turns "seed-to-soil map:" into the seed-to-soil descriptor.
func parseHeader(line string) (remap.Descriptor, error) {
	name, ok := strings.CutSuffix(line, headerSuffix)
	if !ok {
		return remap.Descriptor{}, errors.Wrap(ErrMalformedHeader, line)
	}

	from, to, ok := strings.Cut(name, stageLink)
	if !ok || from == "" || to == "" || strings.ContainsAny(name, " \t") {
		return remap.Descriptor{}, errors.Wrap(ErrMalformedHeader, line)
	}

	return remap.Descriptor{Name: name, From: remap.Stage(from), To: remap.Stage(to)}, nil
}

func (a *Almanac) declare(desc remap.Descriptor) error {
	for _, d := range a.Descriptors {
		if d.Name == desc.Name {
			return errors.Wrap(ErrDuplicateSection, desc.Name)
		}
	}

	a.Descriptors = append(a.Descriptors, desc)

	return nil
}

// SeedRanges reads the seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]remap.Range, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, errors.Wrapf(ErrOddSeeds, "got %d seeds", len(a.Seeds))
	}

	ranges := make([]remap.Range, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		ranges = append(ranges, remap.Range{Start: a.Seeds[i], Length: a.Seeds[i+1]})
	}

	return ranges, nil
}

// Pipeline builds the remap pipeline described by the almanac.
func (a *Almanac) Pipeline(opts ...remap.BuildOption) (*remap.Pipeline, error) {
	pipe, err := remap.Build(a.Descriptors, a.Rows, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build pipeline")
	}

	return pipe, nil
}
