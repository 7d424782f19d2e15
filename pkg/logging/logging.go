package logging

import (
	"io"
	"log/slog"
)

// New builds the logger handed to every component at startup. There is no
// package-level logger: components receive a *slog.Logger explicitly so that
// tests can swap in their own handler.
func New(debug bool, output io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ForSubsystem tags a logger with the subsystem it belongs to, so every record
// carries the component name.
func ForSubsystem(log *slog.Logger, subsystem string) *slog.Logger {
	return log.With(slog.String("subsystem", subsystem))
}
