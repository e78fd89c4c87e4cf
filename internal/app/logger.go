package app

import (
	"io"
	"log/slog"
)

// newLogger builds the App's isolated logger from the validated Config
// values. The process-wide default logger is never touched here, so multiple
// App instances can log to separate writers.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

// parseLogLevel maps a config string to its slog level, defaulting to info
// for anything the CLI validation did not catch.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
