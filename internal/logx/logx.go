// Package logx provides the engine's diagnostic logging. The MCP stdio
// transport requires clean stdout/stdin for protocol framing, so no
// message is ever written to stdout: it goes to a log file when a log
// directory is given, and to stderr otherwise (in any mode, serve
// included).
package logx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger is the structured logging surface used across the engine.
// Each method accepts alternating key/value pairs, same convention as
// log/slog.
type Logger struct {
	inner *slog.Logger
	file  *os.File
}

// New builds a Logger at level, writing JSON lines to file. Pass an
// empty logDir to log to stderr instead (CLI mode, where stdout/stdin
// are not reserved for a wire protocol).
func New(logDir, level string) (*Logger, error) {
	if logDir == "" {
		return &Logger{inner: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))}, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", logDir, err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("symbolindex-%s.log", time.Now().Format("2006-01-02T150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{inner: slog.New(handler), file: file}, nil
}

// NoOp returns a Logger that discards everything, for use in tests.
func NoOp() *Logger {
	return &Logger{inner: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

func parseLevel(level string) slog.Level {
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

func (l *Logger) Debug(msg string, kv ...any) { l.log(slog.LevelDebug, msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(slog.LevelInfo, msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(slog.LevelWarn, msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.log(slog.LevelError, msg, kv...) }

func (l *Logger) log(level slog.Level, msg string, kv ...any) {
	if l == nil || l.inner == nil {
		return
	}
	l.inner.Log(context.Background(), level, msg, kv...)
}

// Close closes the underlying log file, if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
