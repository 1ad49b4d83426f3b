// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for VidyaSetu components.
//
// The package wraps Go's standard slog with multi-destination output:
//
//   - Default: stderr output (Unix CLI convention)
//   - Optional: daily JSON log files with automatic directory creation
//   - Extensible: a LogExporter hook for remote sinks
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("resolving query", "session_id", sessionID)
//
// # Service Usage
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelInfo,
//	    LogDir:  "/var/log/vidyasetu",
//	    Service: "router",
//	    JSON:    true,
//	})
//	defer logger.Close()
//	logger.SetAsDefault() // route package-level slog calls through it
//
// # Thread Safety
//
// Logger is safe for concurrent use; mutable state is mutex-protected
// and the underlying slog.Logger is thread-safe.
//
// # Security
//
// Nothing is redacted automatically. Do not log API keys or raw user
// PII; log metadata ("query_len", "token_present") instead.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for recoverable issues (retries, fallbacks).
	LevelWarn

	// LevelError is for failed operations the system survives.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive level name to a Level.
// Unknown names default to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures Logger behavior. The zero value writes Info+
// messages to stderr in text format.
type Config struct {
	// Level is the minimum log level. Default: LevelInfo.
	Level Level

	// LogDir enables file logging to the given directory. The file is
	// named "{Service}_{YYYY-MM-DD}.log" in JSON format; the directory
	// is created with 0750 permissions if missing. Supports a leading
	// ~ for home expansion. Default: "" (disabled).
	LogDir string

	// Service identifies the component ("router", "vidyactl") and is
	// attached to every entry as the service attribute.
	Service string

	// JSON switches stderr output to JSON. File output is always JSON.
	JSON bool

	// Quiet disables stderr output; useful for daemons whose stderr
	// nobody reads. File and exporter output are unaffected.
	Quiet bool

	// Exporter, when set, receives every entry asynchronously. Export
	// failures are dropped, never propagated into the logging path.
	Exporter LogExporter
}

// =============================================================================
// Exporter Extension
// =============================================================================

// LogExporter is the hook for remote log sinks (OTLP collectors, log
// aggregation systems). Implementations must buffer internally and
// never block the logging path.
type LogExporter interface {
	// Export receives one entry; called with a short-timeout context.
	Export(ctx context.Context, entry LogEntry) error

	// Flush sends all buffered entries; called at graceful shutdown.
	Flush(ctx context.Context) error

	// Close releases resources; called after Flush.
	Close() error
}

// LogEntry is the exporter's view of one log record.
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Service   string
	Attrs     map[string]any
}

// =============================================================================
// Logger
// =============================================================================

// Logger provides structured logging with multi-destination output.
// Always Close() loggers with file output or an exporter attached.
type Logger struct {
	slog     *slog.Logger
	config   Config
	file     *os.File
	exporter LogExporter

	mu     sync.Mutex
	closed bool
}

// New creates a Logger from config. File-logging setup failures degrade
// to stderr-only with a warning rather than failing construction; a
// logger that cannot log is worse than one that logs to the wrong
// place.
func New(config Config) *Logger {
	var writers []io.Writer
	if !config.Quiet {
		writers = append(writers, os.Stderr)
	}

	var file *os.File
	if config.LogDir != "" {
		if f, err := openLogFile(config.LogDir, config.Service); err != nil {
			fmt.Fprintf(os.Stderr, "logging: file output disabled: %v\n", err)
		} else {
			file = f
			writers = append(writers, f)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}
	out := io.MultiWriter(writers...)
	var handler slog.Handler
	if config.JSON || file != nil {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	sl := slog.New(handler)
	if config.Service != "" {
		sl = sl.With("service", config.Service)
	}
	return &Logger{
		slog:     sl,
		config:   config,
		file:     file,
		exporter: config.Exporter,
	}
}

// Default returns a stderr-only Logger at Info level, the right choice
// for CLI entry points before configuration is parsed.
func Default() *Logger {
	return New(Config{})
}

// openLogFile creates the log directory if needed and opens (appending)
// today's log file.
func openLogFile(dir, service string) (*os.File, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand ~ in log dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create log dir %s: %w", dir, err)
	}
	if service == "" {
		service = "vidyasetu"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// With returns a child Logger carrying additional attributes. The child
// shares the parent's destinations; Close the parent, not the child.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:     l.slog.With(args...),
		config:   l.config,
		file:     nil, // parent owns the handle
		exporter: l.exporter,
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.log(LevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.log(LevelWarn, msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...any) {
	switch level {
	case LevelDebug:
		l.slog.Debug(msg, args...)
	case LevelWarn:
		l.slog.Warn(msg, args...)
	case LevelError:
		l.slog.Error(msg, args...)
	default:
		l.slog.Info(msg, args...)
	}

	if l.exporter != nil && level >= l.config.Level {
		entry := LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Message:   msg,
			Service:   l.config.Service,
			Attrs:     attrsToMap(args),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = l.exporter.Export(ctx, entry)
		}()
	}
}

// attrsToMap converts slog-style alternating key/value args. Non-string
// keys and trailing odd values are recorded under "!BADKEY", matching
// slog's own convention.
func attrsToMap(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			m["!BADKEY"] = args[i]
			continue
		}
		m[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		m["!BADKEY"] = args[len(args)-1]
	}
	return m
}

// SetAsDefault installs this logger's handler as the process-wide slog
// default, so package-level slog calls in the pipeline flow through the
// configured destinations.
func (l *Logger) SetAsDefault() {
	slog.SetDefault(l.slog)
}

// Close flushes and closes the exporter and the log file. Idempotent.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	var firstErr error
	if l.exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.exporter.Flush(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
		if err := l.exporter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if l.file != nil {
		if err := l.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
