package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/orchestrator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

const displayManifest = `version: 1
types:
  - name: Display
    derive_debug: true
    variants:
      - name: Block
      - name: InlineFlex
        aliases: ["-webkit-inline-flex"]
      - name: None
        keyword: none
`

const multiManifest = `version: 1
types:
  - name: Display
    variants:
      - name: Block
  - name: Px
    dimension: true
    fields:
      - name: Value
        type: float64
`

func manifestDocument(t *testing.T, raw string) *schema.Document {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceFromFile("style.yaml"), []byte(raw))
	return &doc
}

func TestOrchestrator_GeneratesGoSource(t *testing.T) {
	gen := orchestrator.New()

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
		TypeName: "Display",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got := string(output)
	for _, want := range []string{
		"package style",
		"func (v Block) AppendCSS(dest *css.Writer) error {",
		"func (v InlineFlex) AppendCSS(dest *css.Writer) error {",
		"func AppendDisplayCSS(v any, dest *css.Writer) error {",
		"func (v Block) String() string {",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestOrchestrator_GrammarBackend(t *testing.T) {
	gen := orchestrator.New()

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
		TypeName: "Display",
		Backend:  "grammar",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got := string(output)
	for _, want := range []string{
		"display =",
		"| block",
		"| inline-flex  [aliases: -webkit-inline-flex]",
		"| none",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("grammar missing %q:\n%s", want, got)
		}
	}
}

func TestOrchestrator_EmitOptionsReachBackend(t *testing.T) {
	gen := orchestrator.New()

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Document:    manifestDocument(t, displayManifest),
		TypeName:    "Display",
		EmitOptions: backend.EmitOptions{Package: "cssvalues"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), "package cssvalues") {
		t.Fatalf("package clause not applied:\n%s", output)
	}
}

func TestOrchestrator_SchemaBypassSkipsLoaderAndParser(t *testing.T) {
	loader := &stubLoader{err: errors.New("loader must not run")}

	gen := orchestrator.New(orchestrator.WithLoader(loader))
	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Schemas: []schema.TypeSchema{{
			Name: "Length",
			Variants: []schema.Variant{{
				Name:       "Px",
				Fields:     []schema.Field{{Name: "Value", Type: "float64"}},
				Directives: schema.VariantDirectives{Dimension: true},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loader.calls != 0 {
		t.Fatalf("loader ran %d times for a schema bypass", loader.calls)
	}
	if !strings.Contains(string(output), "func (v Px) AppendCSS(dest *css.Writer) error {") {
		t.Fatalf("dimension method missing:\n%s", output)
	}
}

func TestOrchestrator_LoadsFromSource(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("style.yaml"), []byte(displayManifest))
	loader := &stubLoader{doc: doc}

	gen := orchestrator.New(orchestrator.WithLoader(loader))
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:   schema.SourceFromFile("style.yaml"),
		TypeName: "Display",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("loader ran %d times, want 1", loader.calls)
	}
}

func TestOrchestrator_WrapsLoaderErrors(t *testing.T) {
	loader := &stubLoader{err: errors.New("disk on fire")}

	gen := orchestrator.New(orchestrator.WithLoader(loader))
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Source: schema.SourceFromFile("style.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "orchestrator: load manifest: disk on fire") {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

func TestOrchestrator_RequiresTypeNameForMultiTypeManifests(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, multiManifest),
	})
	if err == nil || !strings.Contains(err.Error(), "type name is required, manifest declares Display, Px") {
		t.Fatalf("expected selection error, got %v", err)
	}
}

func TestOrchestrator_SoleTypeNeedsNoName(t *testing.T) {
	gen := orchestrator.New()

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), "AppendDisplayCSS") {
		t.Fatalf("sole type not selected:\n%s", output)
	}
}

func TestOrchestrator_RejectsUnknownTypeName(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, multiManifest),
		TypeName: "Flex",
	})
	if err == nil || !strings.Contains(err.Error(), `type "Flex" not found`) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestOrchestrator_RejectsUnknownBackend(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
		TypeName: "Display",
		Backend:  "fortran",
	})
	if err == nil || !strings.Contains(err.Error(), `backend "fortran"`) {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestOrchestrator_FallsBackToFirstRegisteredBackend(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	registry := backend.NewRegistry()
	registry.MustRegister(stub)

	// The default backend name is not registered, so the orchestrator falls
	// back to the first registered backend.
	gen := orchestrator.New(orchestrator.WithRegistry(registry))
	output, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
		TypeName: "Display",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("unexpected backend output: %s", output)
	}
	if stub.last == nil || stub.last.TypeName != "Display" {
		t.Fatalf("stub backend did not receive program: %#v", stub.last)
	}
}

func TestOrchestrator_RequiresSourceDocumentOrSchemas(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{})
	if err == nil || !strings.Contains(err.Error(), "source, document, or schemas are required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestOrchestrator_PropagatesCompileErrors(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Schemas: []schema.TypeSchema{{
			Name: "Broken",
			Variants: []schema.Variant{{
				Name: "Broken",
				Fields: []schema.Field{
					{Name: "A", Type: "float64"},
					{Name: "B", Type: "float64"},
				},
				Directives: schema.VariantDirectives{Dimension: true},
			}},
		}},
	})
	if err == nil || !strings.Contains(err.Error(), "orchestrator: compile Broken") {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestOrchestrator_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := orchestrator.New()
	_, err := gen.Generate(ctx, orchestrator.Request{
		Document: manifestDocument(t, displayManifest),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type stubLoader struct {
	doc   schema.Document
	err   error
	calls int
}

func (s *stubLoader) Load(context.Context, schema.Source) (schema.Document, error) {
	s.calls++
	if s.err != nil {
		return schema.Document{}, s.err
	}
	return s.doc, nil
}

type stubBackend struct {
	name string
	last *ir.Program
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) ContentType() string { return "text/plain" }

func (s *stubBackend) Emit(_ context.Context, program *ir.Program, _ backend.EmitOptions) ([]byte, error) {
	s.last = program
	return []byte("ok"), nil
}
