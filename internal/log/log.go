// Package log provides the context-aware diagnostic logger for ncd.
// All diagnostics go to stderr; stdout is reserved for the resolved
// path (see internal/output).
package log

import (
	"context"
	"fmt"
	"io"
)

type ctxKey struct{}

// Logger writes diagnostics. Quiet suppresses warnings, debug enables
// trace output of the resolution pipeline.
type Logger struct {
	out   io.Writer
	debug bool
	quiet bool
}

// New creates a logger.
func New(out io.Writer, debug, quiet bool) *Logger {
	return &Logger{out: out, debug: debug, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context, or a discarding
// logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Warnf writes a warning unless quiet mode is on.
func (l *Logger) Warnf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "ncd: "+format+"\n", args...)
}

// Debugf writes trace output when debug mode is on.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "ncd: debug: "+format+"\n", args...)
}

// Debug reports whether debug mode is enabled.
func (l *Logger) Debug() bool { return l.debug }

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer { return l.out }
