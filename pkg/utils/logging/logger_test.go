package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/anrid/ny-mortality/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestParseLogLevel(t *testing.T) {
	level, ok := logging.ParseLogLevel("warning")
	gt.True(t, ok)
	gt.Equal(t, level, slog.LevelWarn)

	level, ok = logging.ParseLogLevel("")
	gt.True(t, ok)
	gt.Equal(t, level, slog.LevelInfo)

	_, ok = logging.ParseLogLevel("verbose")
	gt.False(t, ok)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	// A buffer is not a terminal, so auto falls back to JSON.
	logger := logging.NewLogger(slog.LevelInfo, &buf, logging.FormatAuto)
	logger.Debug("hidden")
	logger.Info("loaded", slog.Int("records", 3))

	gt.S(t, buf.String()).Contains(`"msg":"loaded"`)
	gt.S(t, buf.String()).Contains(`"records":3`)
	gt.S(t, buf.String()).NotContains("hidden")
}
