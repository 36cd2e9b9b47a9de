package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer keeps the first write error so markup can be written straight
// through without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s escaped for a text or quoted attribute position.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Component renders c inline.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err is the first error seen.
func (w *Writer) Err() error {
	return w.err
}
