package codewriter

import (
	"fmt"
	"go/format"
)

// gofmt formats assembled source. On failure the unformatted source is
// returned with the error: the text is usually the fastest way to see what
// the generator emitted wrong.
func gofmt(src []byte) ([]byte, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("codewriter: format generated source: %w", err)
	}
	return formatted, nil
}
