package schema

import "context"

// Parser normalises manifest documents into the TypeSchema values the
// generator consumes. A single manifest may declare several types.
type Parser interface {
	Schemas(ctx context.Context, doc Document) ([]TypeSchema, error)
}

// ParserOptions exposes toggles shared by parser implementations.
type ParserOptions struct {
	// Validate runs TypeSchema.Validate on every parsed type so directive
	// conflicts surface before generation. Defaults to true.
	Validate bool

	// AllowEmptyManifests accepts manifests that declare no types. Defaults
	// to false: an empty manifest is almost always a wiring mistake.
	AllowEmptyManifests bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles eager schema validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithEmptyManifests toggles acceptance of manifests without types.
func WithEmptyManifests(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyManifests = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/manifest should call this
// helper to remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Validate: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level cssgen package to avoid import cycles.
