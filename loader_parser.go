package cssgen

import (
	internalLoader "github.com/goliatone/go-cssgen/internal/manifest/loader"
	internalParser "github.com/goliatone/go-cssgen/internal/manifest/parser"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// NewLoader constructs a manifest loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a manifest parser backed by the internal implementation.
func NewParser(options ...schema.ParserOption) schema.Parser {
	cfg := schema.NewParserOptions(options...)
	return internalParser.New(cfg)
}
