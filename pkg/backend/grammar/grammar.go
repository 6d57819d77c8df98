// Package grammar renders rendering programs as value-grammar summaries:
// one block per type, one syntax line per variant, with alias notes. The
// layout lives in an embedded template rendered through the template seam,
// so the presentation can be restyled without touching the summarizer.
package grammar

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/naming"
	"github.com/goliatone/go-cssgen/pkg/template"
	"github.com/goliatone/go-cssgen/pkg/template/gotemplate"
)

//go:embed templates/*.tpl
var templates embed.FS

// Option customises the backend.
type Option func(*Grammar)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(tr template.TemplateRenderer) Option {
	return func(g *Grammar) {
		if tr != nil {
			g.engine = tr
		}
	}
}

// Grammar emits value-grammar documentation for rendering programs.
type Grammar struct {
	engine template.TemplateRenderer
}

// New constructs the backend with the embedded template set.
func New(options ...Option) (*Grammar, error) {
	g := &Grammar{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}

	if g.engine == nil {
		sub, err := fs.Sub(templates, "templates")
		if err != nil {
			return nil, fmt.Errorf("grammar: embedded templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(sub))
		if err != nil {
			return nil, fmt.Errorf("grammar: template engine: %w", err)
		}
		g.engine = engine
	}
	return g, nil
}

// Name implements backend.Backend.
func (*Grammar) Name() string { return "grammar" }

// ContentType implements backend.Backend.
func (*Grammar) ContentType() string { return "text/plain; charset=utf-8" }

// Emit renders the program's grammar block.
func (g *Grammar) Emit(ctx context.Context, program *ir.Program, _ backend.EmitOptions) ([]byte, error) {
	if program == nil {
		return nil, fmt.Errorf("grammar: program is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}

	variants := make([]variantSummary, 0, len(program.Arms))
	for _, arm := range program.Arms {
		variants = append(variants, summarize(arm))
	}

	rendered, err := g.engine.RenderTemplate("grammar", map[string]any{
		"type_name":   naming.ToCSSIdentifier(program.TypeName),
		"type_params": typeParams(program),
		"variants":    variants,
	})
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	return []byte(strings.TrimRight(rendered, "\n") + "\n"), nil
}

func typeParams(program *ir.Program) string {
	if !program.Generic() {
		return ""
	}
	names := make([]string, len(program.TypeParams))
	for i, p := range program.TypeParams {
		names[i] = p.Name
	}
	return " [" + strings.Join(names, ", ") + "]"
}
