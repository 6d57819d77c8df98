// Package codewriter accumulates generated Go source. A Writer collects the
// file body plus the imports it references, then Frame assembles the header,
// package clause, and import block and runs the result through gofmt.
package codewriter

import (
	"bytes"
	"fmt"
	"path"
	"regexp"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Writer buffers the body of one generated source file.
type Writer struct {
	buf     bytes.Buffer
	imports *linkedhashmap.Map // alias -> import path
	ns      NS
}

// NewWriter creates an empty Writer whose namespace starts with the given
// names reserved. Reserve the package-level declarations the file will
// coexist with so generated helpers never shadow them.
func NewWriter(reserved ...string) *Writer {
	return &Writer{
		imports: linkedhashmap.New(),
		ns:      NewNS(reserved...),
	}
}

// Printf writes formatted text to the body. Indentation is irrelevant here;
// Frame runs gofmt over the assembled file.
func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
}

// Linef writes one formatted line to the body.
func (w *Writer) Linef(format string, args ...any) {
	fmt.Fprintf(&w.buf, format+"\n", args...)
}

// Blank writes an empty line to the body.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Name returns a unique identifier in the file's namespace.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the file's namespace.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// packageName guesses the package name an import path resolves to, skipping
// a trailing major-version segment like "v2".
func packageName(importPath string) string {
	base := path.Base(importPath)
	if versionSegment.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	return base
}

// Import records an import and returns the name to qualify its members with.
// The name differs from the requested one when a previous import or a
// reserved identifier already claimed it. Importing the same path twice
// returns the same name.
func (w *Writer) Import(importPath, name string) string {
	if name == "" {
		name = packageName(importPath)
	}

	for candidate := range DisambiguateName(name) {
		if prev, ok := w.imports.Get(candidate); ok {
			if prev.(string) == importPath {
				return candidate
			}
			continue
		}
		if !w.ns.Reserve(candidate) {
			continue
		}
		w.imports.Put(candidate, importPath)
		return candidate
	}
	panic("unreachable")
}

// Frame assembles the complete source file: header comment, package clause,
// import block in first-use order, then the body. The result is formatted
// with gofmt; if formatting fails the raw source is returned alongside the
// error so callers can report the offending text.
func (w *Writer) Frame(header, pkg string) ([]byte, error) {
	var out bytes.Buffer
	if header != "" {
		fmt.Fprintf(&out, "%s\n", header)
	}
	fmt.Fprintf(&out, "package %s\n\n", pkg)

	switch w.imports.Size() {
	case 0:
	case 1:
		it := w.imports.Iterator()
		it.Next()
		fmt.Fprintf(&out, "import %s\n\n", importSpec(it.Key().(string), it.Value().(string)))
	default:
		fmt.Fprintf(&out, "import (\n")
		it := w.imports.Iterator()
		for it.Next() {
			fmt.Fprintf(&out, "%s\n", importSpec(it.Key().(string), it.Value().(string)))
		}
		fmt.Fprintf(&out, ")\n\n")
	}

	out.Write(w.buf.Bytes())
	return gofmt(out.Bytes())
}

// importSpec renders one import line, aliased when the last path segment
// would resolve to a different package name.
func importSpec(alias, importPath string) string {
	if alias != packageName(importPath) {
		return fmt.Sprintf("%s %q", alias, importPath)
	}
	return fmt.Sprintf("%q", importPath)
}
