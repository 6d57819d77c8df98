// Package schema defines the declarative description of a CSS value type:
// its variants, their fields, and the rendering directives attached at the
// type, variant, and field level, together with the eager validation rules
// the generator relies on. Front-ends under internal/ construct these values
// from YAML manifests or Go packages; the generator consumes them read-only.
package schema

// TypeSchema describes one type under generation: an ordered sequence of
// variants plus type-level directives. A single-variant schema models a
// struct; multiple variants model a sum type.
type TypeSchema struct {
	// Name is the structural name of the type; for Go-source schemas it is
	// the struct or interface name the generated code attaches to.
	Name string

	// TypeParams lists the type's generic parameter names in declaration
	// order. They participate in bound inference only.
	TypeParams []string

	// Variants holds the alternatives in declaration order. Order is an
	// output contract: it fixes dispatch order and, through fields, the
	// left-to-right layout of rendered text.
	Variants []Variant

	Directives TypeDirectives
}

// IsEnum reports whether the schema has more than one variant. Type-level
// function and comma directives are rejected on enums because a multi-variant
// type has no single identifier or field list to wrap.
func (s TypeSchema) IsEnum() bool {
	return len(s.Variants) > 1
}

// TypeDirectives carries the directives recognized at the type level.
// Absence of a directive always means its zero value, never an error.
type TypeDirectives struct {
	// DeriveDebug requests the secondary debug-text entry point that
	// delegates to the main serializer through an adapter sink.
	DeriveDebug bool

	// Function and Comma exist at the type level because a single-variant
	// schema is also its own variant definition; they merge into the sole
	// variant before generation and are illegal on enums.
	Function *FunctionName
	Comma    bool
}

// Variant is one alternative shape of the type.
type Variant struct {
	// Name is the variant's structural identifier. Its canonical external
	// spelling (naming.ToCSSIdentifier) is what empty variants render and
	// what dimension and function directives append or wrap with.
	Name string

	// Fields holds the variant's bindings in declaration order.
	Fields []Field

	Directives VariantDirectives
}

// ActiveFields returns the fields that participate in rendering, preserving
// declaration order. Skipped fields are absent from output and from bound
// inference alike.
func (v Variant) ActiveFields() []Field {
	active := make([]Field, 0, len(v.Fields))
	for _, f := range v.Fields {
		if f.Directives.Skip {
			continue
		}
		active = append(active, f)
	}
	return active
}

// FieldTypes returns each field's declared type expression keyed by field
// name.
func (v Variant) FieldTypes() map[string]string {
	types := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		types[f.Name] = f.Type
	}
	return types
}

// VariantDirectives carries the directives recognized on one variant.
type VariantDirectives struct {
	// Function wraps the variant's output in "name(...)"; nil means no
	// wrapping. The name inherits the canonical identifier unless overridden.
	Function *FunctionName

	// Comma selects ", " instead of " " as the separator between successive
	// rendered items.
	Comma bool

	// Dimension appends the canonical identifier immediately after the
	// rendered value with no separator, as in "3px". It requires exactly one
	// field and excludes Function and Keyword.
	Dimension bool

	// Keyword renders the variant as this literal text regardless of
	// identifier; it requires a field-less variant. Empty means unset.
	Keyword string

	// Aliases lists alternative external spellings. Rendering ignores them;
	// the grammar backend and describe output surface them.
	Aliases []string
}

// Separator returns the separator placed between successive rendered items.
func (d VariantDirectives) Separator() string {
	if d.Comma {
		return ", "
	}
	return " "
}

// Field is one bound value inside a variant.
type Field struct {
	// Name identifies the binding; generated code accesses the value
	// through it.
	Name string

	// Type is the field's declared type expression. It feeds bound
	// inference only and never influences dispatch.
	Type string

	Directives FieldDirectives
}

// FieldDirectives carries the directives recognized on one field.
type FieldDirectives struct {
	// Skip removes the field from output and bound inference entirely.
	Skip bool

	// Iterable renders every element of the field as a successive sequence
	// item instead of rendering the field value directly.
	Iterable bool

	// IfEmpty is literal fallback text written verbatim as a single item
	// when an iterable field holds no elements. Empty means unset; it is
	// only legal together with Iterable.
	IfEmpty string

	// IgnoreBound exempts a directly rendered field from bound inference.
	IgnoreBound bool
}

// FunctionName is the optional override carried by the function directive:
// the wrapper name either inherits the variant's canonical identifier or is
// given explicitly.
type FunctionName struct {
	name string
}

// InheritedFunctionName returns a FunctionName that resolves to the
// canonical identifier.
func InheritedFunctionName() *FunctionName {
	return &FunctionName{}
}

// ExplicitFunctionName returns a FunctionName that resolves to name.
func ExplicitFunctionName(name string) *FunctionName {
	return &FunctionName{name: name}
}

// Explicit returns the override string when one was given.
func (f *FunctionName) Explicit() (string, bool) {
	if f == nil || f.name == "" {
		return "", false
	}
	return f.name, true
}

// Resolve picks the wrapper name: the explicit override when present,
// otherwise the canonical identifier.
func (f *FunctionName) Resolve(identifier string) string {
	if f != nil && f.name != "" {
		return f.name
	}
	return identifier
}
