// Package runlog provides the per-run log sink. Each run owns its own
// leveled slog.Logger writing to the run directory's sim.log; nothing here
// touches process-global logging state, so runs never fight over a sink.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a verbosity string to a slog.Level. Any value containing
// "debug" (case-insensitive) selects debug; everything else is info.
func ParseLevel(verbosity string) slog.Level {
	if strings.Contains(strings.ToLower(verbosity), "debug") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New opens logPath in truncate mode and returns a leveled logger writing to
// it. The caller owns the returned closer and closes it when the run ends.
func New(logPath, verbosity string) (*slog.Logger, io.Closer, error) {
	file, err := os.Create(logPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriterLogger(file, verbosity), file, nil
}

// NewWriterLogger creates a leveled logger writing to w.
func NewWriterLogger(w io.Writer, verbosity string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(verbosity)}
	return slog.New(slog.NewTextHandler(w, opts))
}
