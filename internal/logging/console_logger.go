package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConsoleLogger writes log lines to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex

	verbosePrefix string
	errorPrefix   string
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
// Prefixes are coloured only when w is a terminal and neither NO_COLOR nor
// CI is set.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	l := &ConsoleLogger{
		verbose:       verbose,
		out:           w,
		verbosePrefix: "[VERBOSE]",
		errorPrefix:   "[ERROR]",
	}

	if colorize(w) {
		r := lipgloss.NewRenderer(w)
		l.verbosePrefix = r.NewStyle().Foreground(lipgloss.Color("240")).Render(l.verbosePrefix)
		l.errorPrefix = r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(l.errorPrefix)
	}
	return l
}

func colorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verbosePrefix+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorPrefix+" ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, prefix+msg+"\n")
}
