package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Parser implements schema.Parser for YAML manifests using gopkg.in/yaml.v3.
type Parser struct {
	options schema.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options schema.ParserOptions) schema.Parser {
	return &Parser{options: options}
}

// Schemas decodes a manifest document into TypeSchema values. Decoding is
// strict: a key that is not a recognised directive fails the whole manifest,
// and every malformed type is reported, not just the first.
func (p *Parser) Schemas(ctx context.Context, doc schema.Document) ([]schema.TypeSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("manifest parser: document payload is empty")
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var m manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest parser: decode %s: %w", describeOrigin(doc), err)
	}

	if m.Version != 0 && m.Version != manifestVersion {
		return nil, fmt.Errorf("manifest parser: unsupported manifest version %d (expected %d)", m.Version, manifestVersion)
	}

	if len(m.Types) == 0 {
		if p.options.AllowEmptyManifests {
			return nil, nil
		}
		return nil, errors.New("manifest parser: manifest declares no types")
	}

	schemas := make([]schema.TypeSchema, 0, len(m.Types))
	var errs []error
	for i, t := range m.Types {
		converted, err := t.convert(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if p.options.Validate {
			if err := converted.Validate(); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		schemas = append(schemas, converted)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return schemas, nil
}

func describeOrigin(doc schema.Document) string {
	if loc := doc.Location(); loc != "" {
		return loc
	}
	return "manifest"
}
