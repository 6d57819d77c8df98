package cssgen

import (
	"context"

	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/orchestrator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Request describes one generation run; alias exported via the root package
// for convenience.
type Request = orchestrator.Request

// EmitOptions carries backend knobs such as the target package name.
type EmitOptions = backend.EmitOptions

// Transformer mutates parsed schemas before compilation.
type Transformer = orchestrator.Transformer

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSource loads the manifest, compiles the named type, and emits Go
// rendering code for it. It is the simplest entry point for callers that just
// want generated source.
func GenerateSource(ctx context.Context, source schema.Source, typeName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		TypeName: typeName,
	})
}

// GenerateSourceFromDocument compiles using a pre-loaded manifest, bypassing
// the loader stage while still delegating to the orchestrator.
func GenerateSourceFromDocument(ctx context.Context, doc schema.Document, typeName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		TypeName: typeName,
	})
}

// GenerateGrammar renders the value grammar of the named type as plain text,
// useful for documentation and review.
func GenerateGrammar(ctx context.Context, source schema.Source, typeName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		TypeName: typeName,
		Backend:  "grammar",
	})
}

// WithSchemaTransformer registers a transformer that can mutate parsed
// schemas, alongside other orchestrator options.
func WithSchemaTransformer(t Transformer) orchestrator.Option {
	return orchestrator.WithSchemaTransformer(t)
}
