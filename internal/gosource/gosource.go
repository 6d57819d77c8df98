// Package gosource extracts rendering schemas from annotated Go source. A
// struct type declares a single-variant schema; an interface type declares a
// sum whose variants are the package's implementing structs. Field directives
// ride on css struct tags, type and variant directives on //cssgen: doc
// comment lines.
package gosource

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Options configure package loading.
type Options struct {
	// Dir is the working directory for build system queries; empty means the
	// process working directory.
	Dir string

	// BuildFlags are passed through to the underlying build system.
	BuildFlags []string

	// Env overrides the environment of build system queries when non-nil.
	Env []string
}

// Option mutates Options prior to loading.
type Option func(*Options)

// WithDir sets the working directory for the load.
func WithDir(dir string) Option {
	return func(opts *Options) {
		opts.Dir = dir
	}
}

// WithBuildFlags forwards extra build flags, such as -tags.
func WithBuildFlags(flags ...string) Option {
	return func(opts *Options) {
		opts.BuildFlags = flags
	}
}

// WithEnv replaces the environment used for build system queries.
func WithEnv(env ...string) Option {
	return func(opts *Options) {
		opts.Env = env
	}
}

// Extract loads the Go package matching pattern and derives schemas for the
// named types. An empty names list extracts every type carrying a cssgen
// directive.
func Extract(ctx context.Context, pattern string, names []string, options ...Option) ([]schema.TypeSchema, error) {
	var opts Options
	for _, opt := range options {
		opt(&opts)
	}

	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        opts.Dir,
		Env:        opts.Env,
		BuildFlags: opts.BuildFlags,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("gosource: load %s: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("gosource: no package matches %s", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("gosource: pattern %s matches %d packages, want one", pattern, len(pkgs))
	}

	pkg := pkgs[0]
	var errs []error
	for _, pkgErr := range pkg.Errors {
		errs = append(errs, pkgErr)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("gosource: package %s: %w", pkg.PkgPath, errors.Join(errs...))
	}

	return Package{Files: pkg.Syntax, Types: pkg.Types}.Schemas(names)
}
