// Package logging provides file-based activity logging for tasktimer.
// Entries go to a global log file (<data>/logs/tasktimer.log) and, for
// task events, to a per-task file (<data>/logs/task-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to log files, filtering by slog level.
// Files are opened lazily and kept open until Close.
// Fields are ordered to minimize memory padding.
type Logger struct {
	files   map[string]*os.File
	now     func() time.Time
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a new Logger that writes under dataDir/logs.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir: dataDir,
		level:   level,
		files:   make(map[string]*os.File),
		now:     time.Now,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	for path, f := range l.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.files, path)
	}
	return lastErr
}

// openLocked returns the cached file for path, opening it for append if needed.
// l.mu must be held.
func (l *Logger) openLocked(path string) (*os.File, error) {
	if f, ok := l.files[path]; ok {
		return f, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.files[path] = f
	return f, nil
}

// formatLog formats one entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1] [timer] message
func formatLog(t time.Time, level slog.Level, taskID int, category, msg string) string {
	scope := "global"
	if taskID > 0 {
		scope = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelName(level),
		scope,
		category,
		msg,
	)
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// log writes an entry to the global log and, if taskID > 0, to the task log.
func (l *Logger) log(level slog.Level, taskID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.now(), level, taskID, category, msg)
	paths := []string{domain.GlobalLogPath(l.dataDir)}
	if taskID > 0 {
		paths = append(paths, domain.TaskLogPath(l.dataDir, taskID))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, path := range paths {
		// Logging must never fail an operation
		if f, err := l.openLocked(path); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID int, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
