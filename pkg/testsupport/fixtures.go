// Package testsupport holds fixture and golden helpers shared by package
// tests. Helpers fail the test on error to keep call sites to one line.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cssgen/internal/manifest/parser"
	"github.com/goliatone/go-cssgen/pkg/css"
	"github.com/goliatone/go-cssgen/pkg/generator"
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// LoadDocument reads a manifest fixture and wraps it in a schema.Document
// with a file source.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadSchemas parses a manifest fixture into validated type schemas.
func MustLoadSchemas(t *testing.T, path string) []schema.TypeSchema {
	t.Helper()

	doc := LoadDocument(t, path)
	schemas, err := parser.New(schema.NewParserOptions()).Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return schemas
}

// MustCompile compiles one schema into its rendering program.
func MustCompile(t *testing.T, s schema.TypeSchema) *ir.Program {
	t.Helper()

	program, err := generator.New().Compile(s)
	if err != nil {
		t.Fatalf("compile %s: %v", s.Name, err)
	}
	return program
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureCSS runs a render function against a css.Writer backed by a buffer
// and returns what it wrote. Tests can assert serialized output without
// duplicating buffer setup.
func CaptureCSS(t *testing.T, render func(*css.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render(css.NewWriter(&buf)); err != nil {
		t.Fatalf("render css: %v", err)
	}
	return buf.String()
}
