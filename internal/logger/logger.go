// Package logger is the bdlens diagnostic log.
//
// Output goes to stderr and is quiet by default: only errors are written
// until --verbose raises the level to debug. Gateway round trips are logged
// through Request so every line carries the request id the backend sees.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level selects which messages are written.
type Level int

// Levels, least to most verbose.
const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var (
	mu     sync.RWMutex
	level            = LevelError
	output io.Writer = os.Stderr
)

// SetLevel sets the most verbose level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetVerbose switches between debug output and errors only.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelError)
}

// IsVerbose reports whether debug messages are written.
func IsVerbose() bool {
	return CurrentLevel() >= LevelDebug
}

// SetOutput redirects the log. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l > level {
		return
	}
	fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
}

// Debug writes a debug line.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info writes an informational line.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn writes a warning.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error writes an error. Errors are written at every level.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section writes a header separating one operation's debug lines from the next.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// RequestLog describes one gateway round trip.
type RequestLog struct {
	Method    string
	Path      string
	RequestID string

	// Status is the HTTP status, or 0 when no response arrived.
	Status   int
	Duration time.Duration
	Err      error
}

// Request logs a gateway round trip at debug level.
func Request(r RequestLog) {
	d := r.Duration.Round(time.Millisecond)
	if r.Status == 0 {
		Debug("api: %s %s failed after %s (request %s): %v", r.Method, r.Path, d, r.RequestID, r.Err)
		return
	}
	Debug("api: %s %s -> %d in %s (request %s)", r.Method, r.Path, r.Status, d, r.RequestID)
}
