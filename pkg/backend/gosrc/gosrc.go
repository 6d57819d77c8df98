// Package gosrc lowers rendering programs to Go source. Non-generic schemas
// become AppendCSS methods on each variant struct plus a dispatch helper;
// generic schemas become standalone generic functions, because a Go method
// cannot introduce the capability constraints the program's bound set calls
// for. Output is complete, gofmt-formatted files.
package gosrc

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cssgen/internal/codewriter"
	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/ir"
)

// Header is the marker comment at the top of every generated file.
const Header = "// Code generated by cssgen. DO NOT EDIT."

// RuntimeImport is the canonical import path of the rendering runtime.
const RuntimeImport = "github.com/goliatone/go-cssgen/pkg/css"

// Source emits Go source for rendering programs.
type Source struct{}

// New constructs the backend.
func New() *Source {
	return &Source{}
}

// Name implements backend.Backend.
func (*Source) Name() string { return "gosrc" }

// ContentType implements backend.Backend.
func (*Source) ContentType() string { return "text/x-go" }

// Emit lowers the program to a complete Go source file.
func (*Source) Emit(ctx context.Context, program *ir.Program, options backend.EmitOptions) ([]byte, error) {
	if program == nil {
		return nil, fmt.Errorf("gosrc: program is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("gosrc: %w", err)
	}

	// The generated file coexists with the user's type declarations, so
	// their names must never be claimed for helpers or import aliases.
	reserved := make([]string, 0, len(program.Arms)+1)
	reserved = append(reserved, program.TypeName)
	for _, arm := range program.Arms {
		reserved = append(reserved, arm.Variant)
	}
	w := codewriter.NewWriter(reserved...)

	runtime := options.RuntimeImport
	if runtime == "" {
		runtime = RuntimeImport
	}

	e := &emitter{
		w:       w,
		program: program,
		cssPkg:  w.Import(runtime, "css"),
	}

	var err error
	if program.Generic() {
		err = e.emitFunctions()
	} else {
		err = e.emitMethods()
	}
	if err != nil {
		return nil, err
	}

	header := options.Header
	if header == "" {
		header = Header
	}
	src, err := w.Frame(header, options.PackageOrDefault())
	if err != nil {
		return src, fmt.Errorf("gosrc: %w", err)
	}
	return src, nil
}
