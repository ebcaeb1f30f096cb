package config

import (
	"io"
	"log/slog"

	"github.com/anrid/ny-mortality/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("MORTALITY_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("MORTALITY_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger. Logs go to w so they never mix with reports.
func (l *Logger) Configure(w io.Writer) (*slog.Logger, error) {
	level, ok := logging.ParseLogLevel(l.Level)
	if !ok {
		return nil, goerr.New("invalid log level", goerr.V("level", l.Level))
	}

	format, ok := logging.ParseFormat(l.Format)
	if !ok {
		return nil, goerr.New("invalid log format", goerr.V("format", l.Format))
	}

	return logging.NewLogger(level, w, format), nil
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}
