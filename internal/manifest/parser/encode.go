package parser

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Encode renders schemas as a version-1 manifest document, the inverse of
// Schemas. The init wizard writes its scaffolding through it.
func Encode(schemas []schema.TypeSchema) ([]byte, error) {
	if len(schemas) == 0 {
		return nil, errors.New("manifest parser: no types to encode")
	}

	m := manifest{
		Version: manifestVersion,
		Types:   make([]typeDoc, 0, len(schemas)),
	}
	for _, s := range schemas {
		m.Types = append(m.Types, typeDocFrom(s))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("manifest parser: encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("manifest parser: encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func typeDocFrom(s schema.TypeSchema) typeDoc {
	doc := typeDoc{
		Name:        s.Name,
		TypeParams:  append([]string(nil), s.TypeParams...),
		DeriveDebug: s.Directives.DeriveDebug,
		Function:    functionDocFrom(s.Directives.Function),
		Comma:       s.Directives.Comma,
	}

	// A single variant named after its type collapses to the shorthand
	// layout, which is also what the parser synthesizes when reading it back.
	if len(s.Variants) == 1 && s.Variants[0].Name == s.Name {
		v := s.Variants[0]
		doc.Keyword = v.Directives.Keyword
		doc.Dimension = v.Directives.Dimension
		doc.Aliases = append([]string(nil), v.Directives.Aliases...)
		doc.Fields = fieldDocsFrom(v.Fields)
		if doc.Function == nil {
			doc.Function = functionDocFrom(v.Directives.Function)
		}
		if !doc.Comma {
			doc.Comma = v.Directives.Comma
		}
		return doc
	}

	doc.Variants = make([]variantDoc, 0, len(s.Variants))
	for _, v := range s.Variants {
		doc.Variants = append(doc.Variants, variantDoc{
			Name:      v.Name,
			Keyword:   v.Directives.Keyword,
			Dimension: v.Directives.Dimension,
			Function:  functionDocFrom(v.Directives.Function),
			Comma:     v.Directives.Comma,
			Aliases:   append([]string(nil), v.Directives.Aliases...),
			Fields:    fieldDocsFrom(v.Fields),
		})
	}
	return doc
}

func fieldDocsFrom(fields []schema.Field) []fieldDoc {
	if len(fields) == 0 {
		return nil
	}
	docs := make([]fieldDoc, 0, len(fields))
	for _, f := range fields {
		docs = append(docs, fieldDoc{
			Name:        f.Name,
			Type:        f.Type,
			Skip:        f.Directives.Skip,
			Iterable:    f.Directives.Iterable,
			IfEmpty:     f.Directives.IfEmpty,
			IgnoreBound: f.Directives.IgnoreBound,
		})
	}
	return docs
}

func functionDocFrom(fn *schema.FunctionName) *functionDoc {
	if fn == nil {
		return nil
	}
	doc := &functionDoc{enabled: true}
	if name, ok := fn.Explicit(); ok {
		doc.name = name
	}
	return doc
}
