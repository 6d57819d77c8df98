// Package css holds the render-time collaborators that generated serializers
// and the dynamic backend write through: a minimal text sink, the Appender
// capability, a separator-inserting sequence writer, and verbatim literals.
//
// Nothing here parses or validates CSS. Failures are always the underlying
// sink's failures and propagate unchanged through every layer.
package css

import (
	"fmt"
	"io"
	"strings"
)

// Appender is the rendering capability: a value that can write its CSS
// spelling into a Writer. Generated code requires it of every directly
// rendered field value, and of iterated elements.
type Appender interface {
	AppendCSS(dest *Writer) error
}

// Writer is the text sink generated serializers write into. It wraps an
// io.Writer and adds nothing beyond string writes; any write error is
// returned to the caller untouched and renders the ongoing call dead.
type Writer struct {
	dst io.Writer
}

// NewWriter wraps dst in a Writer.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteString writes s exactly as given.
func (w *Writer) WriteString(s string) error {
	_, err := io.WriteString(w.dst, s)
	return err
}

// Append renders v into the writer. It exists so call sites read uniformly
// whether they hold a Writer or a SequenceWriter.
func (w *Writer) Append(v Appender) error {
	return v.AppendCSS(w)
}

// SequenceWriter writes successive items separated by a fixed separator. The
// separator appears before every item except the first, so items that never
// arrive (an empty iteration without fallback) contribute neither text nor
// separators.
type SequenceWriter struct {
	dest  *Writer
	sep   string
	first bool
}

// NewSequenceWriter returns a SequenceWriter targeting dest with the given
// separator.
func NewSequenceWriter(dest *Writer, sep string) *SequenceWriter {
	return &SequenceWriter{dest: dest, sep: sep, first: true}
}

// Item writes the separator when needed and then renders v. A failure from
// either write aborts the item and propagates.
func (sw *SequenceWriter) Item(v Appender) error {
	if sw.first {
		sw.first = false
	} else if err := sw.dest.WriteString(sw.sep); err != nil {
		return err
	}
	return v.AppendCSS(sw.dest)
}

// Literal writes s as one item, participating in separator logic like any
// other item.
func (sw *SequenceWriter) Literal(s string) error {
	return sw.Item(Verbatim(s))
}

// Verbatim is literal text rendered exactly as given, without quoting or
// escaping. Empty-collection fallbacks are written through it.
type Verbatim string

// AppendCSS writes the literal text.
func (v Verbatim) AppendCSS(dest *Writer) error {
	return dest.WriteString(string(v))
}

// ValueOf adapts an arbitrary value to Appender, deferring the capability
// check to render time. Generated code reaches for it where static typing
// cannot see the capability, such as values of an unconstrained type
// parameter.
func ValueOf(v any) Appender {
	return valueAppender{v: v}
}

type valueAppender struct {
	v any
}

func (a valueAppender) AppendCSS(dest *Writer) error {
	ap, ok := a.v.(Appender)
	if !ok {
		return fmt.Errorf("css: %T cannot render itself", a.v)
	}
	return ap.AppendCSS(dest)
}

// AppendString renders v into a fresh buffer and returns the text. Debug
// wrappers and tests use it; rendering errors surface unchanged.
func AppendString(v Appender) (string, error) {
	var b strings.Builder
	if err := v.AppendCSS(NewWriter(&b)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustAppendString is AppendString for values whose rendering cannot fail,
// such as generated String methods writing into an in-memory buffer.
func MustAppendString(v Appender) string {
	s, err := AppendString(v)
	if err != nil {
		panic(err)
	}
	return s
}
