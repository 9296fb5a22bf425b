package app

import (
	"io"
	"log/slog"
)

// newLogger creates a slog.Logger writing to w. It does not set the global
// logger, allowing for isolated logger instances. Unknown levels fall back
// to info and unknown formats to text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
