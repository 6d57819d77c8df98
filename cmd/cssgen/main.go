// Command cssgen turns declarative CSS value schemas into rendering code.
//
//	cssgen generate -source style.yaml -type Display -output display_css.go
//	cssgen generate -package ./internal/style -type Transform
//	cssgen describe -source style.yaml -grammar
//	cssgen init -output style.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	cssgen "github.com/goliatone/go-cssgen"
	"github.com/goliatone/go-cssgen/internal/gosource"
	"github.com/goliatone/go-cssgen/internal/manifest/parser"
	"github.com/goliatone/go-cssgen/internal/wizard"
	"github.com/goliatone/go-cssgen/pkg/backend"
	"github.com/goliatone/go-cssgen/pkg/orchestrator"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// remoteTimeout caps manifest fetches when a URL source is given. The library
// loader keeps HTTP off by default; the CLI turns it on because a URL on the
// command line is an explicit request.
const remoteTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "describe":
		runDescribe(os.Args[2:])
	case "init":
		runInit(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: cssgen <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  generate   compile a schema and emit rendering code\n")
	fmt.Fprintf(os.Stderr, "  describe   print the declared types of a manifest\n")
	fmt.Fprintf(os.Stderr, "  init       scaffold a manifest interactively\n\n")
	fmt.Fprintf(os.Stderr, "Run cssgen <command> -h for command flags.\n")
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	source := fs.String("source", "", "manifest path or URL")
	pkgPattern := fs.String("package", "", "Go package pattern to extract annotated types from (alternative to -source)")
	typeName := fs.String("type", "", "type to generate (optional when the manifest declares exactly one)")
	backendName := fs.String("backend", "", "backend to use: gosrc or grammar (default gosrc)")
	outPkg := fs.String("pkg", "", "package clause of the generated file (default style)")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	ctx := context.Background()

	req := orchestrator.Request{
		TypeName: *typeName,
		Backend:  *backendName,
		EmitOptions: backend.EmitOptions{
			Package: *outPkg,
		},
	}

	switch {
	case *pkgPattern != "":
		var names []string
		if *typeName != "" {
			names = []string{*typeName}
		}
		schemas, err := gosource.Extract(ctx, *pkgPattern, names)
		if err != nil {
			log.Fatalf("Failed to extract schemas: %v", err)
		}
		req.Schemas = schemas
	case *source != "":
		req.Source = parseSource(*source)
	default:
		log.Fatalf("Either -source or -package is required")
	}

	gen := cssgen.NewOrchestrator(orchestrator.WithLoader(newLoader()))
	code, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate: %v", err)
	}

	writeOutput(*output, code)
}

func runDescribe(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	source := fs.String("source", "", "manifest path or URL")
	typeName := fs.String("type", "", "describe only this type")
	grammar := fs.Bool("grammar", false, "print the value grammar after each table")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}
	if *source == "" {
		log.Fatalf("-source is required")
	}

	ctx := context.Background()
	src := parseSource(*source)

	loader := newLoader()
	doc, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	schemas, err := cssgen.NewParser().Schemas(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to parse manifest: %v", err)
	}

	printed := 0
	for _, s := range schemas {
		if *typeName != "" && s.Name != *typeName {
			continue
		}
		describeType(os.Stdout, s)
		if *grammar {
			text, err := cssgen.GenerateGrammar(ctx, src, s.Name, orchestrator.WithLoader(loader))
			if err != nil {
				log.Fatalf("Failed to render grammar for %s: %v", s.Name, err)
			}
			fmt.Println(string(text))
		}
		printed++
	}
	if printed == 0 {
		names := make([]string, 0, len(schemas))
		for _, s := range schemas {
			names = append(names, s.Name)
		}
		log.Fatalf("Type %q not found, manifest declares %s", *typeName, strings.Join(names, ", "))
	}
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	output := fs.String("output", "cssgen.yaml", "manifest file to write")
	force := fs.Bool("force", false, "overwrite the output file if it exists")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			log.Fatalf("Refusing to overwrite %s, pass -force to allow", *output)
		}
	}

	schemas, err := wizard.New().Run(context.Background())
	if err != nil {
		log.Fatalf("Failed to collect schema: %v", err)
	}

	manifest, err := parser.Encode(schemas)
	if err != nil {
		log.Fatalf("Failed to encode manifest: %v", err)
	}

	if err := os.WriteFile(*output, manifest, 0o644); err != nil {
		log.Fatalf("Failed to write manifest: %v", err)
	}
	fmt.Printf("Manifest written to %s\n", *output)
}

func newLoader() schema.Loader {
	return cssgen.NewLoader(schema.WithHTTPFallback(remoteTimeout))
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		log.Fatalf("Empty source")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func writeOutput(path string, data []byte) {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", path)
		return
	}
	fmt.Println(string(data))
}
