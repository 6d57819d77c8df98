package manifest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	cssgen "github.com/goliatone/go-cssgen"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// The fixture declares Display, Px, and LinearGradient; every source kind has
// to produce the same parsed types.
func typeNames(t *testing.T, schemas []schema.TypeSchema) []string {
	t.Helper()
	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s.Name)
	}
	return names
}

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()
	want := []string{"Display", "Px", "LinearGradient"}

	fixture := filepath.Join("testdata", "style.yaml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "style.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	parser := cssgen.NewParser()

	// File source
	loader := cssgen.NewLoader()
	docFile, err := loader.Load(ctx, schema.SourceFromFile(filePath))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	schemas, err := parser.Schemas(ctx, docFile)
	if err != nil {
		t.Fatalf("parse file document: %v", err)
	}
	if diff := cmp.Diff(want, typeNames(t, schemas)); diff != "" {
		t.Fatalf("file types mismatch (-want +got):\n%s", diff)
	}

	// fs.FS source
	loaderFS := cssgen.NewLoader(schema.WithFileSystem(os.DirFS("testdata")))
	docFS, err := loaderFS.Load(ctx, schema.SourceFromFS("style.yaml"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	schemas, err = parser.Schemas(ctx, docFS)
	if err != nil {
		t.Fatalf("parse fs document: %v", err)
	}
	if diff := cmp.Diff(want, typeNames(t, schemas)); diff != "" {
		t.Fatalf("fs types mismatch (-want +got):\n%s", diff)
	}

	// HTTP source
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	loaderHTTP := cssgen.NewLoader(schema.WithHTTPFallback(0))
	docHTTP, err := loaderHTTP.Load(ctx, schema.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	schemas, err = parser.Schemas(ctx, docHTTP)
	if err != nil {
		t.Fatalf("parse http document: %v", err)
	}
	if diff := cmp.Diff(want, typeNames(t, schemas)); diff != "" {
		t.Fatalf("http types mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderRejectsURLWithoutHTTPSupport(t *testing.T) {
	loader := cssgen.NewLoader()
	if _, err := loader.Load(context.Background(), schema.SourceFromURL("http://127.0.0.1:0/style.yaml")); err == nil {
		t.Fatalf("expected url loading to be disabled by default")
	}
}

func TestLoaderRejectsNilSource(t *testing.T) {
	loader := cssgen.NewLoader()
	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected nil source to be rejected")
	}
}
