package dynamic_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cssgen/pkg/backend/dynamic"
	"github.com/goliatone/go-cssgen/pkg/css"
	"github.com/goliatone/go-cssgen/pkg/generator"
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// ident is a leaf carrying the rendering capability.
type ident string

func (i ident) AppendCSS(dest *css.Writer) error {
	return dest.WriteString(string(i))
}

type (
	Block       struct{}
	InlineFlex  struct{}
	NoneKeyword struct{}

	Px struct{ Value float64 }

	Opacity struct{ Value ident }

	Shadow struct {
		OffsetX ident
		OffsetY ident
		Color   ident
	}

	LinearGradient struct{ Stops []ident }

	AnimateableFeatures struct{ Features []ident }

	Pair[T any] struct {
		First  T
		Second T
	}

	Counter struct {
		Enabled bool
		Count   int
		Retries uint8
		Ratio   float32
	}

	Opaque struct{ Ch chan int }
)

func render(t *testing.T, s schema.TypeSchema, value any) string {
	t.Helper()
	r := compile(t, s)
	got, err := r.RenderString(value)
	if err != nil {
		t.Fatalf("RenderString(%T): %v", value, err)
	}
	return got
}

func compile(t *testing.T, s schema.TypeSchema) *dynamic.Renderer {
	t.Helper()
	prog, err := generator.New().Compile(s)
	if err != nil {
		t.Fatalf("Compile(%s): %v", s.Name, err)
	}
	r, err := dynamic.Compile(prog)
	if err != nil {
		t.Fatalf("dynamic.Compile(%s): %v", s.Name, err)
	}
	return r
}

func displaySchema() schema.TypeSchema {
	return schema.TypeSchema{
		Name: "Display",
		Variants: []schema.Variant{
			{Name: "Block"},
			{Name: "InlineFlex"},
			{Name: "NoneKeyword", Directives: schema.VariantDirectives{Keyword: "none"}},
		},
	}
}

func gradientSchema() schema.TypeSchema {
	return schema.TypeSchema{
		Name: "Gradient",
		Variants: []schema.Variant{{
			Name: "LinearGradient",
			Fields: []schema.Field{{
				Name:       "Stops",
				Type:       "[]ColorStop",
				Directives: schema.FieldDirectives{Iterable: true},
			}},
			Directives: schema.VariantDirectives{
				Function: schema.InheritedFunctionName(),
				Comma:    true,
			},
		}},
	}
}

func TestRenderVariantIdentifiers(t *testing.T) {
	r := compile(t, displaySchema())

	for value, want := range map[any]string{
		Block{}:       "block",
		InlineFlex{}:  "inline-flex",
		NoneKeyword{}: "none",
		&Block{}:      "block",
	} {
		got, err := r.RenderString(value)
		if err != nil {
			t.Fatalf("RenderString(%T): %v", value, err)
		}
		if got != want {
			t.Errorf("RenderString(%T) = %q, want %q", value, got, want)
		}
	}
}

func TestRenderDimension(t *testing.T) {
	s := schema.TypeSchema{
		Name: "Length",
		Variants: []schema.Variant{{
			Name:       "Px",
			Fields:     []schema.Field{{Name: "Value", Type: "CSSFloat"}},
			Directives: schema.VariantDirectives{Dimension: true},
		}},
	}
	if got := render(t, s, Px{Value: 3}); got != "3px" {
		t.Errorf("Px{3} = %q, want %q", got, "3px")
	}
	if got := render(t, s, Px{Value: 0.5}); got != "0.5px" {
		t.Errorf("Px{0.5} = %q, want %q", got, "0.5px")
	}
}

func TestRenderFunctionWithCommaSeparator(t *testing.T) {
	value := LinearGradient{Stops: []ident{"red", "blue 40%", "green"}}
	got := render(t, gradientSchema(), value)
	if want := "linear-gradient(red, blue 40%, green)"; got != want {
		t.Errorf("gradient = %q, want %q", got, want)
	}
}

func TestRenderEmptyIterationWritesNoSeparators(t *testing.T) {
	got := render(t, gradientSchema(), LinearGradient{})
	if want := "linear-gradient()"; got != want {
		t.Errorf("empty gradient = %q, want %q", got, want)
	}
}

func TestRenderSpaceSeparatedSequence(t *testing.T) {
	s := schema.TypeSchema{
		Name: "BoxShadow",
		Variants: []schema.Variant{{
			Name: "Shadow",
			Fields: []schema.Field{
				{Name: "OffsetX", Type: "Length"},
				{Name: "OffsetY", Type: "Length"},
				{Name: "Color", Type: "Color"},
			},
		}},
	}
	value := Shadow{OffsetX: "1px", OffsetY: "2px", Color: "#333"}
	if got, want := render(t, s, value), "1px 2px #333"; got != want {
		t.Errorf("shadow = %q, want %q", got, want)
	}
}

func TestRenderIfEmptyFallback(t *testing.T) {
	s := schema.TypeSchema{
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
	}

	if got := render(t, s, AnimateableFeatures{}); got != "auto" {
		t.Errorf("empty features = %q, want %q", got, "auto")
	}
	full := AnimateableFeatures{Features: []ident{"scroll-position", "contents"}}
	if got, want := render(t, s, full), "scroll-position, contents"; got != want {
		t.Errorf("features = %q, want %q", got, want)
	}
}

func TestSingleFieldBypassMatchesSequencePath(t *testing.T) {
	s := schema.TypeSchema{
		Name: "Opacity",
		Variants: []schema.Variant{{
			Name:   "Opacity",
			Fields: []schema.Field{{Name: "Value", Type: "AlphaValue"}},
		}},
	}
	bypass := render(t, s, Opacity{Value: "0.5"})

	// The same variant forced through the sequence machinery.
	seq, err := dynamic.Compile(&ir.Program{
		TypeName: "Opacity",
		Arms: []ir.Arm{{
			Variant: "Opacity",
			Body: ir.Sequence{
				Separator: " ",
				Items:     []ir.Node{ir.SeqItem{Field: "Value"}},
			},
		}},
	})
	if err != nil {
		t.Fatalf("dynamic.Compile: %v", err)
	}
	viaSequence, err := seq.RenderString(Opacity{Value: "0.5"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}

	if bypass != viaSequence {
		t.Fatalf("bypass rendered %q, sequence path rendered %q", bypass, viaSequence)
	}
}

func TestRenderIsIdempotentAcrossSinks(t *testing.T) {
	r := compile(t, gradientSchema())
	value := LinearGradient{Stops: []ident{"red", "blue"}}

	var first, second bytes.Buffer
	if err := r.Render(value, &first); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if err := r.Render(value, &second); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("renders differ: %q vs %q", first.String(), second.String())
	}
}

// failingWriter accepts a fixed number of writes, then rejects.
type failingWriter struct {
	budget int
	buf    bytes.Buffer
}

var errSink = errors.New("sink closed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.budget <= 0 {
		return 0, errSink
	}
	w.budget--
	return w.buf.Write(p)
}

func TestSinkFailureShortCircuitsBeforeClosingParen(t *testing.T) {
	r := compile(t, gradientSchema())
	value := LinearGradient{Stops: []ident{"red", "blue"}}

	// Budget covers "linear-gradient(" and the first stop only.
	sink := &failingWriter{budget: 2}
	err := r.Render(value, sink)
	if !errors.Is(err, errSink) {
		t.Fatalf("Render error = %v, want %v", err, errSink)
	}
	if got := sink.buf.String(); got != "linear-gradient(red" {
		t.Fatalf("sink holds %q, want %q", got, "linear-gradient(red")
	}
	if strings.Contains(sink.buf.String(), ")") {
		t.Fatal("closing parenthesis written after a body failure")
	}
}

func TestRenderRejectsUnknownVariant(t *testing.T) {
	r := compile(t, displaySchema())
	_, err := r.RenderString(Px{Value: 1})
	if err == nil {
		t.Fatal("rendering an unlisted type succeeded")
	}
	if !strings.Contains(err.Error(), "Display") || !strings.Contains(err.Error(), "Px") {
		t.Fatalf("error %q does not name the schema type and the value type", err)
	}
}

func TestRenderRejectsNil(t *testing.T) {
	r := compile(t, displaySchema())
	if _, err := r.RenderString((*Block)(nil)); err == nil {
		t.Fatal("rendering a nil pointer succeeded")
	}
	if _, err := r.RenderString(nil); err == nil {
		t.Fatal("rendering nil succeeded")
	}
}

func TestRenderGenericInstantiation(t *testing.T) {
	s := schema.TypeSchema{
		Name:       "Position",
		TypeParams: []string{"T"},
		Variants: []schema.Variant{{
			Name: "Pair",
			Fields: []schema.Field{
				{Name: "First", Type: "T"},
				{Name: "Second", Type: "T"},
			},
		}},
	}
	value := Pair[ident]{First: "left", Second: "top"}
	if got, want := render(t, s, value), "left top"; got != want {
		t.Errorf("pair = %q, want %q", got, want)
	}
}

func TestRenderPrimitiveLeaves(t *testing.T) {
	s := schema.TypeSchema{
		Name: "CounterStyle",
		Variants: []schema.Variant{{
			Name: "Counter",
			Fields: []schema.Field{
				{Name: "Enabled", Type: "bool"},
				{Name: "Count", Type: "int"},
				{Name: "Retries", Type: "uint8"},
				{Name: "Ratio", Type: "float32"},
			},
		}},
	}
	value := Counter{Enabled: true, Count: -3, Retries: 2, Ratio: 0.25}
	if got, want := render(t, s, value), "true -3 2 0.25"; got != want {
		t.Errorf("counter = %q, want %q", got, want)
	}
}

func TestRenderRejectsOpaqueLeaf(t *testing.T) {
	s := schema.TypeSchema{
		Name: "Channel",
		Variants: []schema.Variant{{
			Name:   "Opaque",
			Fields: []schema.Field{{Name: "Ch", Type: "chan int"}},
		}},
	}
	r := compile(t, s)
	_, err := r.RenderString(Opaque{Ch: make(chan int)})
	if err == nil || !strings.Contains(err.Error(), "cannot render") {
		t.Fatalf("opaque leaf error = %v, want a render rejection", err)
	}
}

func TestCompileRejectsNilProgram(t *testing.T) {
	if _, err := dynamic.Compile(nil); err == nil {
		t.Fatal("Compile(nil) succeeded")
	}
}
