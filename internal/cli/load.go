package cli

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/pkg/almanac"
	"github.com/askiada/go-remap/pkg/remap"
)

// stageOpts are the flags overriding the stages a walk starts and stops at.
type stageOpts struct {
	entry    string
	terminal string
}

func (o stageOpts) buildOptions() []remap.BuildOption {
	var opts []remap.BuildOption
	if o.entry != "" {
		opts = append(opts, remap.WithEntry(remap.Stage(o.entry)))
	}

	if o.terminal != "" {
		opts = append(opts, remap.WithTerminal(remap.Stage(o.terminal)))
	}

	return opts
}

// load reads the almanac at path and builds its pipeline.
func load(ctx context.Context, path string, stages stageOpts) (*almanac.Almanac, *remap.Pipeline, error) {
	logger := loggerFromContext(ctx)

	alm, err := almanac.Load(path)
	if err != nil {
		return nil, nil, err
	}

	pipe, err := alm.Pipeline(stages.buildOptions()...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to build %s", path)
	}

	logger.Debug("pipeline built",
		"path", path,
		"stages", len(pipe.Tables()),
		"entry", pipe.Entry(),
		"terminal", pipe.Terminal(),
		"seeds", len(alm.Seeds))

	return alm, pipe, nil
}
