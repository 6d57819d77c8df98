// Package backend defines the emission side of the pipeline: a Backend turns
// a compiled rendering program into bytes, whether that is Go source, a
// value-grammar summary, or anything else a caller registers.
package backend

import (
	"context"

	"github.com/goliatone/go-cssgen/pkg/ir"
)

// Backend converts a rendering program into a byte representation (Go
// source, grammar text, etc.).
type Backend interface {
	Name() string
	ContentType() string
	Emit(ctx context.Context, program *ir.Program, options EmitOptions) ([]byte, error)
}
