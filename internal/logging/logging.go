// Package logging provides the slog setup shared by the imaginarium CLI and
// its ambient packages.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup creates a configured slog.Logger. format is "json" or "text"
// (defaults to "text" if empty, since the CLI's primary audience is a
// terminal, not a log aggregator). If w is nil, writes to os.Stderr.
func Setup(component, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("component", component))
}

// SetDefault installs a logger built by Setup as the process-wide default.
func SetDefault(component, format string) *slog.Logger {
	logger := Setup(component, format, nil)
	slog.SetDefault(logger)
	return logger
}
