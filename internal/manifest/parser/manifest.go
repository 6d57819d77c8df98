package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// manifestVersion is the newest manifest layout this parser understands.
const manifestVersion = 1

// manifest is the YAML document shape. Keys map one-to-one onto schema
// directives; decoding runs with KnownFields so a misspelled directive fails
// the manifest instead of silently vanishing.
type manifest struct {
	Version int       `yaml:"version"`
	Types   []typeDoc `yaml:"types"`
}

// typeDoc declares one type. A type either lists variants (a sum type) or
// uses the single-variant shorthand: fields and variant directives written
// directly at the type level, producing one variant named after the type.
type typeDoc struct {
	Name        string       `yaml:"name"`
	TypeParams  []string     `yaml:"type_params,omitempty"`
	DeriveDebug bool         `yaml:"derive_debug,omitempty"`
	Function    *functionDoc `yaml:"function,omitempty"`
	Comma       bool         `yaml:"comma,omitempty"`
	Variants    []variantDoc `yaml:"variants,omitempty"`

	// Single-variant shorthand keys, illegal next to variants.
	Keyword   string     `yaml:"keyword,omitempty"`
	Dimension bool       `yaml:"dimension,omitempty"`
	Aliases   []string   `yaml:"aliases,omitempty"`
	Fields    []fieldDoc `yaml:"fields,omitempty"`
}

type variantDoc struct {
	Name      string       `yaml:"name"`
	Keyword   string       `yaml:"keyword,omitempty"`
	Dimension bool         `yaml:"dimension,omitempty"`
	Function  *functionDoc `yaml:"function,omitempty"`
	Comma     bool         `yaml:"comma,omitempty"`
	Aliases   []string     `yaml:"aliases,omitempty"`
	Fields    []fieldDoc   `yaml:"fields,omitempty"`
}

type fieldDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type,omitempty"`
	Skip        bool   `yaml:"skip,omitempty"`
	Iterable    bool   `yaml:"iterable,omitempty"`
	IfEmpty     string `yaml:"if_empty,omitempty"`
	IgnoreBound bool   `yaml:"ignore_bound,omitempty"`
}

// functionDoc accepts either `function: true` (wrap using the canonical
// identifier) or `function: <name>` (explicit wrapper name). `function: false`
// decodes but converts to no directive at all.
type functionDoc struct {
	enabled bool
	name    string
}

func (f *functionDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Tag {
	case "!!bool":
		return node.Decode(&f.enabled)
	case "!!str":
		f.enabled = true
		return node.Decode(&f.name)
	default:
		return fmt.Errorf("line %d: function takes true or a wrapper name, got %s", node.Line, node.Tag)
	}
}

func (f *functionDoc) MarshalYAML() (any, error) {
	if f.name != "" {
		return f.name, nil
	}
	return f.enabled, nil
}

func (f *functionDoc) directive() *schema.FunctionName {
	if f == nil || !f.enabled {
		return nil
	}
	if f.name != "" {
		return schema.ExplicitFunctionName(f.name)
	}
	return schema.InheritedFunctionName()
}

// convert builds the TypeSchema for one declaration. Structural requirements
// (names present, shorthand not mixed with variants) are checked here;
// directive conflicts are left to schema validation.
func (t typeDoc) convert(index int) (schema.TypeSchema, error) {
	if t.Name == "" {
		return schema.TypeSchema{}, fmt.Errorf("manifest parser: types[%d]: name is required", index)
	}

	out := schema.TypeSchema{
		Name:       t.Name,
		TypeParams: append([]string(nil), t.TypeParams...),
		Directives: schema.TypeDirectives{
			DeriveDebug: t.DeriveDebug,
			Function:    t.Function.directive(),
			Comma:       t.Comma,
		},
	}

	if len(t.Variants) > 0 {
		if t.usesShorthand() {
			return schema.TypeSchema{}, fmt.Errorf("manifest parser: type %q mixes variants with single-variant keys", t.Name)
		}
		out.Variants = make([]schema.Variant, 0, len(t.Variants))
		for i, v := range t.Variants {
			variant, err := v.convert(t.Name, i)
			if err != nil {
				return schema.TypeSchema{}, err
			}
			out.Variants = append(out.Variants, variant)
		}
		return out, nil
	}

	fields, err := convertFields(t.Name, t.Name, t.Fields)
	if err != nil {
		return schema.TypeSchema{}, err
	}
	out.Variants = []schema.Variant{{
		Name:   t.Name,
		Fields: fields,
		Directives: schema.VariantDirectives{
			Dimension: t.Dimension,
			Keyword:   t.Keyword,
			Aliases:   append([]string(nil), t.Aliases...),
		},
	}}
	return out, nil
}

func (t typeDoc) usesShorthand() bool {
	return len(t.Fields) > 0 || t.Keyword != "" || t.Dimension || len(t.Aliases) > 0
}

func (v variantDoc) convert(typeName string, index int) (schema.Variant, error) {
	if v.Name == "" {
		return schema.Variant{}, fmt.Errorf("manifest parser: type %q: variants[%d]: name is required", typeName, index)
	}
	fields, err := convertFields(typeName, v.Name, v.Fields)
	if err != nil {
		return schema.Variant{}, err
	}
	return schema.Variant{
		Name:   v.Name,
		Fields: fields,
		Directives: schema.VariantDirectives{
			Function:  v.Function.directive(),
			Comma:     v.Comma,
			Dimension: v.Dimension,
			Keyword:   v.Keyword,
			Aliases:   append([]string(nil), v.Aliases...),
		},
	}, nil
}

func convertFields(typeName, variantName string, docs []fieldDoc) ([]schema.Field, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	fields := make([]schema.Field, 0, len(docs))
	for i, f := range docs {
		if f.Name == "" {
			return nil, fmt.Errorf("manifest parser: type %q: variant %q: fields[%d]: name is required", typeName, variantName, i)
		}
		fields = append(fields, schema.Field{
			Name: f.Name,
			Type: f.Type,
			Directives: schema.FieldDirectives{
				Skip:        f.Skip,
				Iterable:    f.Iterable,
				IfEmpty:     f.IfEmpty,
				IgnoreBound: f.IgnoreBound,
			},
		})
	}
	return fields, nil
}
