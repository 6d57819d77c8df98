package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

func TestEncodeRoundTrip(t *testing.T) {
	schemas := parse(t, `
version: 1
types:
  - name: Display
    derive_debug: true
    variants:
      - name: Block
      - name: InlineFlex
        aliases: ["-webkit-inline-flex"]
      - name: None
        keyword: none
  - name: LinearGradient
    function: linear-gradient
    comma: true
    fields:
      - name: Stops
        type: "[]GradientStop"
        iterable: true
  - name: Shadow
    type_params: [C, L]
    variants:
      - name: Shadow
        fields:
          - name: Color
            type: C
          - name: Blur
            type: L
            skip: true
`)

	raw, err := Encode(schemas)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	reparsed := parse(t, string(raw))
	if diff := cmp.Diff(schemas, reparsed, cmpFunctionNames); diff != "" {
		t.Fatalf("round trip drift (-first +second):\n%s\nencoded:\n%s", diff, raw)
	}
}

func TestEncodeCollapsesShorthand(t *testing.T) {
	raw, err := Encode([]schema.TypeSchema{{
		Name: "Px",
		Variants: []schema.Variant{{
			Name:       "Px",
			Fields:     []schema.Field{{Name: "Value", Type: "float64"}},
			Directives: schema.VariantDirectives{Dimension: true},
		}},
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := string(raw)
	if !strings.Contains(got, "dimension: true") {
		t.Fatalf("shorthand dimension missing:\n%s", got)
	}
	if strings.Contains(got, "variants:") {
		t.Fatalf("shorthand should not declare variants:\n%s", got)
	}
}

func TestEncodeInheritedFunctionAsBool(t *testing.T) {
	raw, err := Encode([]schema.TypeSchema{{
		Name: "Blur",
		Variants: []schema.Variant{{
			Name:       "Blur",
			Fields:     []schema.Field{{Name: "Radius", Type: "Length"}},
			Directives: schema.VariantDirectives{Function: schema.InheritedFunctionName()},
		}},
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(raw), "function: true") {
		t.Fatalf("inherited function should encode as true:\n%s", raw)
	}
}

func TestEncodeRejectsEmptySet(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Fatalf("expected error for empty schema set")
	}
}
