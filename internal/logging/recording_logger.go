package logging

import (
	"fmt"
	"sync"
)

// RecordingLogger keeps every formatted message, grouped by level.
type RecordingLogger struct {
	mu       sync.Mutex
	verboses []string
	infos    []string
	errors   []string
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) Verbose(format string, args ...interface{}) {
	l.record(&l.verboses, format, args)
}

func (l *RecordingLogger) Info(format string, args ...interface{}) {
	l.record(&l.infos, format, args)
}

func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.record(&l.errors, format, args)
}

func (l *RecordingLogger) record(dst *[]string, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

// Verboses returns a copy of the recorded verbose messages.
func (l *RecordingLogger) Verboses() []string { return l.snapshot(l.verboses) }

// Infos returns a copy of the recorded info messages.
func (l *RecordingLogger) Infos() []string { return l.snapshot(l.infos) }

// Errors returns a copy of the recorded error messages.
func (l *RecordingLogger) Errors() []string { return l.snapshot(l.errors) }

func (l *RecordingLogger) snapshot(src []string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), src...)
}
