// Package observability provides the structured logger used by intes.
package observability

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/intes/pkg/errors"
)

// Logger is a structured logger for harness components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to w. A nil writer discards.
func NewLogger(component string, level slog.Level, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "intes"),
	)
	return &Logger{Logger: logger}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLogger("discard", slog.LevelError+1, io.Discard)
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInvalidInput, "unknown log level").
			WithContext("level", name)
	}
	return level, nil
}

// OpenFile opens (creating directories as needed) an append-only log file.
// The terminal belongs to the UI, so logs never go to stdout.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "create log directory").
			WithContext("path", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "open log file").
			WithContext("path", path)
	}
	return f, nil
}

// WithRun returns a logger tagged with the process run id
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("run_id", runID))}
}

// WithTab returns a logger with tab-specific fields
func (l *Logger) WithTab(tab string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("tab", tab))}
}

// WithWidget returns a logger with widget-specific fields
func (l *Logger) WithWidget(id string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("widget", id))}
}

// TabStateChanged logs a tab lifecycle transition
func (l *Logger) TabStateChanged(from, to string) {
	l.Info("tab state changed",
		slog.String("from", from),
		slog.String("to", to),
	)
}

// SignalPosted logs a synthetic signal delivery
func (l *Logger) SignalPosted(signal string, delivered int, handled bool) {
	l.Debug("signal posted",
		slog.String("signal", signal),
		slog.Int("delivered", delivered),
		slog.Bool("handled", handled),
	)
}

// TreeAttached logs an accessibility tree hand-off
func (l *Logger) TreeAttached(host string, descriptors int) {
	l.Info("accessibility tree attached",
		slog.String("host", host),
		slog.Int("descriptors", descriptors),
	)
}
