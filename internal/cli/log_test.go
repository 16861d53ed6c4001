package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		"info at info level":   {level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Info("test") }, wantLog: true},
		"debug at info level":  {level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: false},
		"debug at debug level": {level: log.DebugLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tc.logFunc(newLogger(&buf, tc.level))
			assert.Equal(t, tc.wantLog, buf.Len() > 0)
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, logger, loggerFromContext(withLogger(context.Background(), logger)))
}

func TestProgressDone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	newProgress(newLogger(&buf, log.InfoLevel)).done("finished", "items", 3)
	assert.Contains(t, buf.String(), "finished")
	assert.Contains(t, buf.String(), "items=3")
	assert.Contains(t, buf.String(), "elapsed=")
}
