package grammar_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/backend/grammar"
	"github.com/goliatone/go-cssgen/pkg/generator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

func emit(t *testing.T, s schema.TypeSchema) string {
	t.Helper()
	prog, err := generator.New().Compile(s)
	if err != nil {
		t.Fatalf("Compile(%s): %v", s.Name, err)
	}
	g, err := grammar.New()
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	out, err := g.Emit(context.Background(), prog, backend.EmitOptions{})
	if err != nil {
		t.Fatalf("Emit(%s): %v", s.Name, err)
	}
	return string(out)
}

func TestEmitEnumGrammar(t *testing.T) {
	got := emit(t, schema.TypeSchema{
		Name: "Display",
		Variants: []schema.Variant{
			{Name: "Block"},
			{Name: "InlineFlex", Directives: schema.VariantDirectives{
				Aliases: []string{"-webkit-inline-flex"},
			}},
			{Name: "NoneKeyword", Directives: schema.VariantDirectives{Keyword: "none"}},
		},
	})

	want := "display =\n" +
		"  | block\n" +
		"  | inline-flex  [aliases: -webkit-inline-flex]\n" +
		"  | none\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitFunctionAndDimensionGrammar(t *testing.T) {
	got := emit(t, schema.TypeSchema{
		Name: "Length",
		Variants: []schema.Variant{
			{
				Name:       "Px",
				Fields:     []schema.Field{{Name: "Value", Type: "CSSFloat"}},
				Directives: schema.VariantDirectives{Dimension: true},
			},
			{
				Name: "CalcFunction",
				Fields: []schema.Field{
					{Name: "Expression", Type: "CalcNode"},
				},
				Directives: schema.VariantDirectives{Function: schema.ExplicitFunctionName("calc")},
			},
		},
	})

	want := "length =\n" +
		"  | <value>px\n" +
		"  | calc( <expression> )\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitSequenceGrammar(t *testing.T) {
	got := emit(t, schema.TypeSchema{
		Name: "WillChange",
		Variants: []schema.Variant{{
			Name: "AnimateableFeatures",
			Fields: []schema.Field{{
				Name:       "Features",
				Type:       "[]CustomIdent",
				Directives: schema.FieldDirectives{Iterable: true, IfEmpty: "auto"},
			}},
			Directives: schema.VariantDirectives{Comma: true},
		}},
	})

	want := "will-change =\n" +
		"  | [ <features># | auto ]\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitGenericGrammarShowsParams(t *testing.T) {
	got := emit(t, schema.TypeSchema{
		Name:       "Shadow",
		TypeParams: []string{"C", "L"},
		Variants: []schema.Variant{{
			Name: "Shadow",
			Fields: []schema.Field{
				{Name: "Color", Type: "C"},
				{Name: "OffsetX", Type: "L"},
				{Name: "OffsetY", Type: "L"},
			},
		}},
	})

	want := "shadow [C, L] =\n" +
		"  | <color> <offset-x> <offset-y>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grammar mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitRejectsNilProgram(t *testing.T) {
	g, err := grammar.New()
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	if _, err := g.Emit(context.Background(), nil, backend.EmitOptions{}); err == nil {
		t.Fatal("Emit(nil) succeeded")
	}
}

func TestBackendIdentity(t *testing.T) {
	g, err := grammar.New()
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	if g.Name() != "grammar" {
		t.Fatalf("Name = %q", g.Name())
	}
	if g.ContentType() == "" {
		t.Fatal("ContentType is empty")
	}
}
