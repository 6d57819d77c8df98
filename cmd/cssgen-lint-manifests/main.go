// Command cssgen-lint-manifests checks schema manifests for directive
// violations and suspicious declarations that validation alone accepts, such
// as aliases that restate the canonical spelling or two variants claiming the
// same external keyword.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cssgen "github.com/goliatone/go-cssgen"
	"github.com/goliatone/go-cssgen/pkg/naming"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint cssgen manifests for invalid or redundant declarations.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/fixtures/style.yaml",
		}
	}

	ctx := context.Background()
	loader := cssgen.NewLoader()
	parser := cssgen.NewParser(
		schema.WithValidation(false),
		schema.WithEmptyManifests(true),
	)

	var (
		violations []violation
	)
	for _, path := range paths {
		linted, err := lintFile(ctx, loader, parser, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, loader schema.Loader, parser schema.Parser, path string) ([]violation, error) {
	doc, err := loader.Load(ctx, schema.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	schemas, err := parser.Schemas(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	var result []violation
	for _, s := range schemas {
		result = append(result, lintValidation(path, s)...)
		result = append(result, lintSpellings(path, s)...)
	}
	return result, nil
}

// lintValidation reports directive violations as lint findings instead of a
// single fatal error, one line per rule.
func lintValidation(file string, s schema.TypeSchema) []violation {
	err := s.Validate()
	if err == nil {
		return nil
	}

	var result []violation
	for _, joined := range unwrapAll(err) {
		schemaErr, ok := joined.(*schema.Error)
		if !ok {
			result = append(result, violation{
				file:     file,
				location: formatLocation([]string{"type", s.Name}),
				message:  joined.Error(),
			})
			continue
		}
		path := []string{"type", schemaErr.Type}
		if schemaErr.Variant != "" {
			path = append(path, "variant", schemaErr.Variant)
		}
		if schemaErr.Field != "" {
			path = append(path, "field", schemaErr.Field)
		}
		result = append(result, violation{
			file:     file,
			location: formatLocation(path),
			message:  schemaErr.Rule,
		})
	}
	return result
}

// lintSpellings flags declarations that validate fine but are almost always
// manifest mistakes: aliases or keywords restating the canonical spelling,
// the same alias declared twice, and two variants resolving to the same
// external keyword so one of them can never be distinguished in review.
func lintSpellings(file string, s schema.TypeSchema) []violation {
	var result []violation

	spellings := make(map[string]string, len(s.Variants))
	claim := func(spelling, variant, base string) {
		prior, taken := spellings[spelling]
		if taken && prior != variant {
			result = append(result, violation{
				file:     file,
				location: formatLocation([]string{"type", s.Name, "variant", variant}),
				message:  fmt.Sprintf("%s %q already used by variant %s", base, spelling, prior),
			})
			return
		}
		spellings[spelling] = variant
	}

	for _, v := range s.Variants {
		ident := naming.ToCSSIdentifier(v.Name)
		loc := formatLocation([]string{"type", s.Name, "variant", v.Name})

		external := ident
		if v.Directives.Keyword != "" {
			if v.Directives.Keyword == ident {
				result = append(result, violation{
					file:     file,
					location: loc,
					message:  fmt.Sprintf("keyword %q restates the canonical spelling, drop the directive", v.Directives.Keyword),
				})
			}
			external = v.Directives.Keyword
		}
		claim(external, v.Name, "spelling")

		seen := make(map[string]struct{}, len(v.Directives.Aliases))
		for _, alias := range v.Directives.Aliases {
			if alias == external {
				result = append(result, violation{
					file:     file,
					location: loc,
					message:  fmt.Sprintf("alias %q restates the canonical spelling, drop it", alias),
				})
				continue
			}
			if _, dup := seen[alias]; dup {
				result = append(result, violation{
					file:     file,
					location: loc,
					message:  fmt.Sprintf("alias %q declared more than once", alias),
				})
				continue
			}
			seen[alias] = struct{}{}
			claim(alias, v.Name, "alias")
		}
	}

	return result
}

// unwrapAll flattens the errors.Join tree that Validate returns.
func unwrapAll(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var flat []error
	for _, e := range joined.Unwrap() {
		flat = append(flat, unwrapAll(e)...)
	}
	return flat
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
