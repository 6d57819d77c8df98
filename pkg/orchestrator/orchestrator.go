package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-cssgen/internal/manifest/loader"
	internalParser "github.com/goliatone/go-cssgen/internal/manifest/parser"
	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/backend/gosrc"
	"github.com/goliatone/go-cssgen/pkg/backend/grammar"
	"github.com/goliatone/go-cssgen/pkg/generator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

const defaultBackendName = "gosrc"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom manifest loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom manifest parser.
func WithParser(parser schema.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithGenerator injects a custom schema compiler, usually to override the
// identifier transform.
func WithGenerator(gen *generator.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = gen
	}
}

// WithRegistry injects a backend registry.
func WithRegistry(registry *backend.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultBackend overrides the backend used when a request omits an
// explicit Backend field.
func WithDefaultBackend(name string) Option {
	return func(o *Orchestrator) {
		o.defaultBackend = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate parsed
// schemas after parsing but before compilation.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the full pipeline from schema manifest to backend
// output. It applies sensible defaults (built-in loader and parser, gosrc and
// grammar backends) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	loader          schema.Loader
	parser          schema.Parser
	generator       *generator.Generator
	registry        *backend.Registry
	defaultBackend  string
	transformer     Transformer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultBackend: defaultBackendName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate output for one declared
// type.
type Request struct {
	// Source identifies where the manifest lives. Optional when Document or
	// Schemas is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already have the
	// raw manifest payload.
	Document *schema.Document

	// Schemas bypasses loading and parsing entirely, for callers that build
	// schemas programmatically such as the Go source front-end.
	Schemas []schema.TypeSchema

	// TypeName selects which declared type to generate. Optional when exactly
	// one type is available.
	TypeName string

	// Backend names the backend to use. If empty, the orchestrator falls back
	// to the configured default backend.
	Backend string

	// EmitOptions carries per-request instructions such as the target package
	// name. When omitted, backends receive the zero-value struct and apply
	// their own defaults.
	EmitOptions backend.EmitOptions
}

// Generate executes the loader → parser → generator → backend sequence and
// returns the emitted bytes (Go source for the default gosrc backend).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	schemas, err := o.resolveSchemas(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := o.applyTransformer(ctx, schemas); err != nil {
		return nil, err
	}

	target, err := selectSchema(schemas, req.TypeName)
	if err != nil {
		return nil, err
	}

	program, err := o.generator.Compile(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile %s: %w", target.Name, err)
	}

	b, err := o.backendFor(req.Backend)
	if err != nil {
		return nil, err
	}

	output, err := b.Emit(ctx, program, req.EmitOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emit output: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) resolveSchemas(ctx context.Context, req Request) ([]schema.TypeSchema, error) {
	if len(req.Schemas) > 0 {
		return req.Schemas, nil
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	schemas, err := o.parser.Schemas(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse manifest: %w", err)
	}
	if len(schemas) == 0 {
		return nil, errors.New("orchestrator: manifest declares no types")
	}
	return schemas, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document, or schemas are required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load manifest: %w", err)
	}
	return doc, nil
}

func selectSchema(schemas []schema.TypeSchema, typeName string) (schema.TypeSchema, error) {
	if typeName == "" {
		if len(schemas) == 1 {
			return schemas[0], nil
		}
		names := make([]string, 0, len(schemas))
		for _, s := range schemas {
			names = append(names, s.Name)
		}
		return schema.TypeSchema{}, fmt.Errorf("orchestrator: type name is required, manifest declares %s", strings.Join(names, ", "))
	}
	for _, s := range schemas {
		if s.Name == typeName {
			return s, nil
		}
	}
	return schema.TypeSchema{}, fmt.Errorf("orchestrator: type %q not found", typeName)
}

func (o *Orchestrator) applyTransformer(ctx context.Context, schemas []schema.TypeSchema) error {
	if o.transformer == nil || len(schemas) == 0 {
		return nil
	}
	if err := o.transformer.Transform(ctx, schemas); err != nil {
		return fmt.Errorf("orchestrator: transform schemas: %w", err)
	}
	return nil
}

func (o *Orchestrator) backendFor(name string) (backend.Backend, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: backend registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultBackend
	}

	if target != "" {
		b, err := o.registry.Get(target)
		if err == nil {
			return b, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: backend %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no backends registered")
	}

	b, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: backend %q: %w", names[0], err)
	}
	return b, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(schema.NewParserOptions())
	}
	if o.generator == nil {
		o.generator = generator.New()
	}
	if o.registry == nil {
		o.registry = backend.NewRegistry()
		o.registry.MustRegister(gosrc.New())
		grammarBackend, err := grammar.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default backends: %w", err)
		} else {
			o.registry.MustRegister(grammarBackend)
		}
	}
	if o.defaultBackend == "" {
		o.defaultBackend = defaultBackendName
	}

	o.defaultsApplied = true
}
