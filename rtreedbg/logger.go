// Package rtreedbg holds the ambient debug-mode concerns a Tree can opt
// into: structured logging of debug-mode errors and of invariant violations
// before they panic, the NodeView introspection interface, and a
// treeprint-based visualizer for Tree.Root(). The structural verifier
// itself is Tree.Verify in the core package. None of it runs on the hot
// path of a release-mode Tree.
package rtreedbg

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Severity mirrors the teacher's logger.Logger importance levels.
type Severity int

const (
	Debug Severity = 9
	Info  Severity = 7
	// Warning is printed for recoverable domain errors (spec.md §7):
	// DimensionOutOfRange and EmptyMBRAccess.
	Warning Severity = 5
	// Error is printed just before a debug-mode Tree panics on
	// InvariantViolation.
	Error Severity = 3
)

// Logger is a minimal, thread-safe sink for the messages a debug-mode Tree
// emits before it returns an error or panics. It is a trimmed adaptation of
// the teacher's logger.Logger: the periodic-logger and write-adapter
// machinery the AIS feed pipeline needed doesn't apply to a synchronous,
// in-process data structure, so only the severity-gated Log core
// survives, generalized from "NMEA feed diagnostics" to "R*-tree invariant
// reporting".
type Logger struct {
	writeTo   io.Writer
	writeLock sync.Mutex
	Threshold Severity
}

// NewLogger creates a Logger that writes messages at or below threshold to
// writeTo. Pass os.Stderr for a sensible default.
func NewLogger(writeTo io.Writer, threshold Severity) *Logger {
	return &Logger{writeTo: writeTo, Threshold: threshold}
}

// StderrLogger is a convenience Logger at Warning severity, for callers who
// just want invariant-violation reports on stderr.
func StderrLogger() *Logger {
	return NewLogger(os.Stderr, Warning)
}

func (l *Logger) prefix(level Severity) string {
	p := time.Now().Format("2006-01-02 15:04:05: ")
	switch level {
	case Warning:
		return p + "WARNING: "
	case Error:
		return p + "ERROR: "
	default:
		return p
	}
}

// Log writes the formatted message if it passes the logger's threshold.
func (l *Logger) Log(level Severity, format string, args ...any) {
	if l == nil || level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	fmt.Fprint(l.writeTo, l.prefix(level))
	fmt.Fprintf(l.writeTo, format, args...)
	fmt.Fprintln(l.writeTo)
}

func (l *Logger) Warningf(format string, args ...any) { l.Log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...any)   { l.Log(Error, format, args...) }
