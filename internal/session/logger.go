// Package session writes an append-only JSONL log of arena activity:
// rounds started, results settling, votes cast. The log is observability
// only; losing it never affects ratings or history.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger appends events to a JSONL file. A nil *Logger is a no-op, so
// callers can log unconditionally.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a logger appending to path. The parent directory is
// created on first append.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the log file path, or "" for a no-op logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one event as a JSON line. Failures are reported as slog
// warnings rather than errors; the session log is best-effort.
func (l *Logger) Append(event Event) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(event); err != nil {
		slog.Warn("failed to write session event", "path", l.path, "error", err)
	}
}

func (l *Logger) append(event Event) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating session log dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(event); err != nil {
		return fmt.Errorf("encoding session event: %w", err)
	}
	return nil
}
