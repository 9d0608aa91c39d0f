package rexfs

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with one helper per file system operation so every
// backend logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger on handler.
// A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON lines to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs key=value lines to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithBackend tags the logger with the backend name.
func (l *Logger) WithBackend(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", name),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogOpen logs an open operation.
func (l *Logger) LogOpen(ctx context.Context, path string, err error) {
	if err != nil {
		l.DebugContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "open completed",
			"path", path,
		)
	}
}

// LogCreate logs a create operation.
func (l *Logger) LogCreate(ctx context.Context, path string, err error) {
	if err != nil {
		l.DebugContext(ctx, "create failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "create completed",
			"path", path,
		)
	}
}

// LogExtract logs the removal of a file from an in-memory registry.
func (l *Logger) LogExtract(ctx context.Context, path string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extract failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "extract completed",
			"path", path,
			"size", size,
		)
	}
}

// LogClose logs a handle close that returned an error.
func (l *Logger) LogClose(ctx context.Context, path string, err error) {
	if err != nil {
		l.WarnContext(ctx, "close failed",
			"path", path,
			"error", err,
		)
	}
}
