package util

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured logger writing to w at the named
// level. Lint results go to stdout, so callers normally pass stderr.
// jsonFormat selects the JSON handler over the default text handler.
func NewLogger(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name (debug, info, warn, error) to its slog
// level. Unrecognized names fall back to info.
func ParseLevel(level string) slog.Level {
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
