// Regenerates docs/value-grammars.txt from the example manifest. Run from
// the repository root after changing the fixture or the grammar template.
package main

import (
	"context"
	"fmt"
	"os"

	cssgen "github.com/goliatone/go-cssgen"
	"github.com/goliatone/go-cssgen/pkg/orchestrator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

func main() {
	ctx := context.Background()

	const (
		manifestPath = "examples/fixtures/style.yaml"
		outputPath   = "docs/value-grammars.txt"
	)

	loader := cssgen.NewLoader()
	doc, err := loader.Load(ctx, schema.SourceFromFile(manifestPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load manifest: %v\n", err)
		os.Exit(1)
	}

	schemas, err := cssgen.NewParser().Schemas(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse manifest: %v\n", err)
		os.Exit(1)
	}

	gen := cssgen.NewOrchestrator()
	var out []byte
	for _, s := range schemas {
		text, err := gen.Generate(ctx, orchestrator.Request{
			Document: &doc,
			TypeName: s.Name,
			Backend:  "grammar",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render grammar for %s: %v\n", s.Name, err)
			os.Exit(1)
		}
		out = append(out, text...)
		out = append(out, '\n')
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated value grammar docs (%d bytes) → %s\n", len(out), outputPath)
}
