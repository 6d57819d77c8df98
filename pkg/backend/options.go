package backend

// EmitOptions describe per-request data that backends can use to customise
// their output without touching the compiled program.
type EmitOptions struct {
	// Package names the package clause of generated Go source. Backends
	// that do not produce Go source ignore it. Empty means "style".
	Package string
	// Header replaces the generated-file marker comment at the top of Go
	// source output. Empty keeps the default marker.
	Header string
	// RuntimeImport overrides the import path of the rendering runtime in
	// generated source. Vendored or forked layouts set this; empty uses
	// the canonical path.
	RuntimeImport string
}

// PackageOrDefault resolves the package clause name.
func (o EmitOptions) PackageOrDefault() string {
	if o.Package == "" {
		return "style"
	}
	return o.Package
}
