// Package logging is a small leveled logger. It stays silent until
// Initialize or InitializeWriter is called, so library code can log freely.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents log severity
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
	return levelNames[l]
}

// ParseLevel maps a config or flag value to a Level. Names match in any case;
// "warning" is accepted and an empty string means info.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes timestamped lines at or above its level.
type Logger struct {
	level atomic.Int32

	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	path   string
}

// New returns a logger writing to w. Close on it does not close w.
func New(w io.Writer, level Level) *Logger {
	l := &Logger{w: w}
	l.level.Store(int32(level))
	return l
}

func (l *Logger) SetLevel(level Level) { l.level.Store(int32(level)) }

// Enabled reports whether lines at level are written.
func (l *Logger) Enabled(level Level) bool {
	return level >= Level(l.level.Load())
}

// Logf writes one line: a timestamp, the level and the formatted message.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	line := fmt.Sprintf("%s %-5s %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w != nil {
		_, _ = io.WriteString(l.w, line)
	}
}

// Close stops the logger, closing the file it opened, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w = nil
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

var std atomic.Pointer[Logger]

// Initialize makes the package logger append to consoleui-YYYY-MM-DD.log
// under logDir, creating the directory.
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(logDir, "consoleui-"+time.Now().Format("2006-01-02")+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l := New(file, level)
	l.closer = file
	l.path = path
	replace(l)
	return nil
}

// InitializeWriter makes the package logger write to w. The caller keeps
// ownership of w.
func InitializeWriter(w io.Writer, level Level) {
	replace(New(w, level))
}

func replace(l *Logger) {
	if prev := std.Swap(l); prev != nil {
		_ = prev.Close()
	}
}

// Close stops package logging, closing the log file.
func Close() error {
	if prev := std.Swap(nil); prev != nil {
		return prev.Close()
	}
	return nil
}

// SetLevel changes the package logger's minimum level.
func SetLevel(level Level) {
	if l := std.Load(); l != nil {
		l.SetLevel(level)
	}
}

// Path returns the file the package logger writes to, or "".
func Path() string {
	if l := std.Load(); l != nil {
		return l.path
	}
	return ""
}

func logf(level Level, format string, args ...any) {
	if l := std.Load(); l != nil {
		l.Logf(level, format, args...)
	}
}

func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }
func Info(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Error(format string, args ...any) { logf(LevelError, format, args...) }
