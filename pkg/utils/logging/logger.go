package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// Format represents the log output format
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// ParseFormat parses a format name. ok is false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "console":
		return FormatConsole, true
	case "json":
		return FormatJSON, true
	case "auto", "":
		return FormatAuto, true
	default:
		return FormatAuto, false
	}
}

// NewLogger creates a slog.Logger writing to w. FormatAuto picks the colored
// console handler on terminals and JSON otherwise.
func NewLogger(level slog.Level, w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatConsole
		}
	}

	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// ParseLogLevel parses a string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, bool) {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug, true
	case "info", "INFO", "":
		return slog.LevelInfo, true
	case "warn", "warning", "WARN", "WARNING":
		return slog.LevelWarn, true
	case "error", "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
