package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lengthSchema() TypeSchema {
	return TypeSchema{
		Name: "Length",
		Variants: []Variant{
			{
				Name:       "Px",
				Fields:     []Field{{Name: "Value", Type: "float64"}},
				Directives: VariantDirectives{Dimension: true},
			},
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	s := TypeSchema{
		Name: "Display",
		Variants: []Variant{
			{Name: "Block"},
			{Name: "Inline"},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsTypeDirectivesOnEnum(t *testing.T) {
	s := TypeSchema{
		Name:       "Image",
		Directives: TypeDirectives{Function: InheritedFunctionName(), Comma: true},
		Variants: []Variant{
			{Name: "Url", Fields: []Field{{Name: "Value", Type: "string"}}},
			{Name: "None"},
		},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for type-level directives on enum")
	}
	for _, fragment := range []string{"function directive", "comma directive"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q does not mention %q", err, fragment)
		}
	}
}

func TestValidateRejectsDimensionWithKeyword(t *testing.T) {
	s := TypeSchema{
		Name: "Length",
		Variants: []Variant{
			{
				Name:       "Px",
				Fields:     []Field{{Name: "Value", Type: "float64"}},
				Directives: VariantDirectives{Dimension: true, Keyword: "x"},
			},
		},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want rejection of dimension+keyword")
	}

	var schemaErr *Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error chain %v does not carry a *schema.Error", err)
	}
	if schemaErr.Variant != "Px" {
		t.Errorf("offending variant = %q, want %q", schemaErr.Variant, "Px")
	}
}

func TestValidateDimensionCountsRawFields(t *testing.T) {
	s := lengthSchema()
	// A second, skipped field still breaks the exactly-one-binding rule:
	// skip-filtering is not applied to this check.
	s.Variants[0].Fields = append(s.Variants[0].Fields, Field{
		Name:       "Unit",
		Type:       "string",
		Directives: FieldDirectives{Skip: true},
	})
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() = nil, want rejection of dimension with two raw fields")
	}

	if err := lengthSchema().Validate(); err != nil {
		t.Fatalf("Validate() of the one-field dimension variant = %v, want nil", err)
	}
}

func TestValidateRejectsKeywordWithFields(t *testing.T) {
	s := TypeSchema{
		Name: "Display",
		Variants: []Variant{
			{
				Name:       "None",
				Fields:     []Field{{Name: "Extra", Type: "string"}},
				Directives: VariantDirectives{Keyword: "none"},
			},
		},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() = nil, want rejection of keyword with fields")
	}
}

func TestValidateRejectsIfEmptyWithoutIterable(t *testing.T) {
	s := TypeSchema{
		Name: "WillChange",
		Variants: []Variant{
			{
				Name: "AnimateableFeatures",
				Fields: []Field{{
					Name:       "Features",
					Type:       "[]CustomIdent",
					Directives: FieldDirectives{IfEmpty: "auto"},
				}},
			},
		},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want rejection of if_empty without iterable")
	}
	var schemaErr *Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error chain %v does not carry a *schema.Error", err)
	}
	if schemaErr.Field != "Features" {
		t.Errorf("offending field = %q, want %q", schemaErr.Field, "Features")
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	s := TypeSchema{
		Name:       "Broken",
		Directives: TypeDirectives{Comma: true},
		Variants: []Variant{
			{Name: "A", Directives: VariantDirectives{Dimension: true, Keyword: "a"}},
			{Name: "A"},
		},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want several violations")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("error %T does not unwrap to a list", err)
	}
	if got := len(joined.Unwrap()); got < 4 {
		t.Errorf("collected %d violations, want at least 4 (comma-on-enum, dimension+keyword, dimension count, duplicate name)", got)
	}
}

func TestActiveFieldsPreservesOrder(t *testing.T) {
	v := Variant{
		Name: "Shadow",
		Fields: []Field{
			{Name: "Color", Type: "Color"},
			{Name: "Cache", Type: "string", Directives: FieldDirectives{Skip: true}},
			{Name: "Blur", Type: "Length"},
		},
	}
	got := v.ActiveFields()
	want := []Field{
		{Name: "Color", Type: "Color"},
		{Name: "Blur", Type: "Length"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ActiveFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionNameResolution(t *testing.T) {
	if got := InheritedFunctionName().Resolve("linear-gradient"); got != "linear-gradient" {
		t.Errorf("inherited Resolve = %q, want canonical identifier", got)
	}
	if got := ExplicitFunctionName("rect").Resolve("inset"); got != "rect" {
		t.Errorf("explicit Resolve = %q, want %q", got, "rect")
	}
	if _, ok := InheritedFunctionName().Explicit(); ok {
		t.Error("inherited name reports an explicit override")
	}
	if name, ok := ExplicitFunctionName("rect").Explicit(); !ok || name != "rect" {
		t.Errorf("Explicit() = %q, %v; want %q, true", name, ok, "rect")
	}
}

func TestSeparatorFollowsComma(t *testing.T) {
	if got := (VariantDirectives{}).Separator(); got != " " {
		t.Errorf("default separator = %q, want single space", got)
	}
	if got := (VariantDirectives{Comma: true}).Separator(); got != ", " {
		t.Errorf("comma separator = %q, want %q", got, ", ")
	}
}
