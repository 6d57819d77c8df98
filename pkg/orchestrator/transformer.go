package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Transformer mutates parsed type schemas before compilation. Implementations
// can override directives, add alias spellings, or perform arbitrary rewrites
// without touching the manifest on disk.
type Transformer interface {
	Transform(ctx context.Context, schemas []schema.TypeSchema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, schemas []schema.TypeSchema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, schemas []schema.TypeSchema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, schemas)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// The document addresses types, variants, and fields by name and patches their
// rendering directives:
//
//	{
//	  "types": {
//	    "Display": {
//	      "derive_debug": true,
//	      "variants": {
//	        "InlineFlex": {"aliases": ["-webkit-inline-flex"]}
//	      }
//	    }
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Types map[string]jsonTypePatch `json:"types"`
}

type jsonTypePatch struct {
	DeriveDebug *bool                       `json:"derive_debug"`
	Function    *string                     `json:"function"`
	Comma       *bool                       `json:"comma"`
	Variants    map[string]jsonVariantPatch `json:"variants"`
}

type jsonVariantPatch struct {
	Keyword   *string                   `json:"keyword"`
	Dimension *bool                     `json:"dimension"`
	Function  *string                   `json:"function"`
	Comma     *bool                     `json:"comma"`
	Aliases   []string                  `json:"aliases"`
	Fields    map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Skip        *bool   `json:"skip"`
	Iterable    *bool   `json:"iterable"`
	IfEmpty     *string `json:"if_empty"`
	IgnoreBound *bool   `json:"ignore_bound"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON preset document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied schemas in
// place. Patched schemas still pass through validation during compilation, so
// a preset that introduces a directive conflict fails there rather than here.
func (t *JSONPresetTransformer) Transform(ctx context.Context, schemas []schema.TypeSchema) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for name, patch := range t.document.Types {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := findSchemaByName(schemas, name)
		if target == nil {
			return fmt.Errorf("json preset transformer: type %q not found", name)
		}
		if err := applyTypePatch(target, patch); err != nil {
			return err
		}
	}
	return nil
}

func applyTypePatch(target *schema.TypeSchema, patch jsonTypePatch) error {
	if patch.DeriveDebug != nil {
		target.Directives.DeriveDebug = *patch.DeriveDebug
	}
	if patch.Comma != nil {
		target.Directives.Comma = *patch.Comma
	}
	if patch.Function != nil {
		target.Directives.Function = functionFromPatch(*patch.Function)
	}

	for name, variantPatch := range patch.Variants {
		variant := findVariantByName(target.Variants, name)
		if variant == nil {
			return fmt.Errorf("json preset transformer: type %q: variant %q not found", target.Name, name)
		}
		if err := applyVariantPatch(target.Name, variant, variantPatch); err != nil {
			return err
		}
	}
	return nil
}

func applyVariantPatch(typeName string, variant *schema.Variant, patch jsonVariantPatch) error {
	if patch.Keyword != nil {
		variant.Directives.Keyword = *patch.Keyword
	}
	if patch.Dimension != nil {
		variant.Directives.Dimension = *patch.Dimension
	}
	if patch.Comma != nil {
		variant.Directives.Comma = *patch.Comma
	}
	if patch.Function != nil {
		variant.Directives.Function = functionFromPatch(*patch.Function)
	}
	if len(patch.Aliases) > 0 {
		variant.Directives.Aliases = mergeAliases(variant.Directives.Aliases, patch.Aliases)
	}

	for name, fieldPatch := range patch.Fields {
		field := findFieldByName(variant.Fields, name)
		if field == nil {
			return fmt.Errorf("json preset transformer: type %q: variant %q: field %q not found", typeName, variant.Name, name)
		}
		applyFieldPatch(field, fieldPatch)
	}
	return nil
}

func applyFieldPatch(field *schema.Field, patch jsonFieldPatch) {
	if patch.Skip != nil {
		field.Directives.Skip = *patch.Skip
	}
	if patch.Iterable != nil {
		field.Directives.Iterable = *patch.Iterable
	}
	if patch.IfEmpty != nil {
		field.Directives.IfEmpty = *patch.IfEmpty
	}
	if patch.IgnoreBound != nil {
		field.Directives.IgnoreBound = *patch.IgnoreBound
	}
}

// functionFromPatch maps the JSON value onto a function directive: the empty
// string requests a wrapper named after the variant, anything else is an
// explicit wrapper name.
func functionFromPatch(name string) *schema.FunctionName {
	if name == "" {
		return schema.InheritedFunctionName()
	}
	return schema.ExplicitFunctionName(name)
}

func findSchemaByName(schemas []schema.TypeSchema, name string) *schema.TypeSchema {
	for idx := range schemas {
		if schemas[idx].Name == name {
			return &schemas[idx]
		}
	}
	return nil
}

func findVariantByName(variants []schema.Variant, name string) *schema.Variant {
	for idx := range variants {
		if variants[idx].Name == name {
			return &variants[idx]
		}
	}
	return nil
}

func findFieldByName(fields []schema.Field, name string) *schema.Field {
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}

func mergeAliases(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extra))
	merged := make([]string, 0, len(existing)+len(extra))
	for _, alias := range existing {
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		merged = append(merged, alias)
	}
	for _, alias := range extra {
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		merged = append(merged, alias)
	}
	return merged
}
