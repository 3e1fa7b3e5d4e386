// Package output writes the resolved path to stdout for shell capture.
//
// The shell wrapper does cd "$(ncd ...)", so stdout must carry nothing
// but paths. Separator conversion and UNC-prefix stripping happen here,
// keeping the resolution pipeline free of presentation concerns.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type ctxKey struct{}

// Printer writes primary output.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context, defaulting to stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Path writes a resolved path, converting separators to the platform's
// native form and stripping the Windows extended-length prefix, which
// shell builtins cannot consume.
func (p *Printer) Path(path string) {
	path = strings.TrimPrefix(path, `\\?\`)
	fmt.Fprintln(p.w, filepath.FromSlash(path))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }
