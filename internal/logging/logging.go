// Package logging builds the structured loggers used across Pocket DOS:
// JSON records to an optional rotating file, fanned out to an in-memory
// ring that interactive hosts can inspect.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Attribute keys attached to component loggers.
const (
	KeyComponent = "component"
	KeySession   = "session"
)

// ParseLevel parses debug, info, warn or error. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
}

// Options configures Setup.
type Options struct {
	Level slog.Level
	// File enables JSON file logging when non-empty.
	File      string
	MaxSizeMB int
	MaxFiles  int
	// BufferSize is the ring capacity; zero uses DefaultBufferSize.
	BufferSize int
	// Writer, if set, receives JSON records in addition to File.
	Writer io.Writer
	// SessionID overrides the generated session id.
	SessionID string
}

// Logger bundles the root logger with the sinks behind it.
type Logger struct {
	*slog.Logger
	Buffer    *BufferHandler
	SessionID string
	file      *RotatingFileWriter
}

// Setup builds a Logger. The caller must Close it.
func Setup(opts Options) (*Logger, error) {
	l := &Logger{
		Buffer:    NewBufferHandler(opts.BufferSize, opts.Level),
		SessionID: opts.SessionID,
	}
	if l.SessionID == "" {
		l.SessionID = uuid.NewString()
	}

	handlers := []slog.Handler{l.Buffer}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.File != "" {
		w, err := NewRotatingFileWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		l.file = w
		handlers = append(handlers, slog.NewJSONHandler(w, hopts))
	}
	if opts.Writer != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.Writer, hopts))
	}

	l.Logger = slog.New(Fanout(handlers...)).With(slog.String(KeySession, l.SessionID))
	return l, nil
}

// Component returns a child logger tagged with name.
func (l *Logger) Component(name string) *slog.Logger {
	return l.With(slog.String(KeyComponent, name))
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Fanout returns a handler passing each record to every handler that
// enables its level.
func Fanout(handlers ...slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return fanout(handlers)
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
