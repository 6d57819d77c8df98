package gosource

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sort"
	"strconv"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Package bundles the pieces of a loaded Go package the extractor needs. The
// go/packages front in Extract fills it; tests can assemble one from
// go/parser and go/types directly.
type Package struct {
	Files []*ast.File
	Types *types.Package
}

// typeDecl pairs a type declaration with its doc comment. Declaration order
// is kept because variant order is an output contract.
type typeDecl struct {
	name string
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	pos  token.Pos
}

// Schemas derives TypeSchema values from the package. names selects the types
// to extract; with no names, every type carrying a cssgen directive is
// extracted in declaration order. Sum interfaces claim their implementing
// structs so those are not extracted twice. Every schema is validated and all
// failures are reported together.
func (p Package) Schemas(names []string) ([]schema.TypeSchema, error) {
	decls := p.decls()
	index := make(map[string]typeDecl, len(decls))
	for _, d := range decls {
		index[d.name] = d
	}

	selected := names
	if len(selected) == 0 {
		selected = p.annotated(decls)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("gosource: package %s declares no annotated types", p.Types.Path())
	}

	schemas := make([]schema.TypeSchema, 0, len(selected))
	var errs []error
	for _, name := range selected {
		s, err := p.schemaFor(name, decls, index)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		schemas = append(schemas, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return schemas, nil
}

func (p Package) decls() []typeDecl {
	var decls []typeDecl
	for _, file := range p.Files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				decls = append(decls, typeDecl{name: ts.Name.Name, spec: ts, doc: doc, pos: ts.Pos()})
			}
		}
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].pos < decls[j].pos })
	return decls
}

// annotated returns the names of directive-carrying types that are not
// already claimed as variants of a directive-carrying sum interface.
func (p Package) annotated(decls []typeDecl) []string {
	claimed := make(map[string]bool)
	for _, d := range decls {
		if !hasDirective(d.doc) {
			continue
		}
		if iface := p.interfaceNamed(d.name); iface != nil {
			for _, impl := range p.implementations(iface, decls) {
				claimed[impl.name] = true
			}
		}
	}

	var names []string
	for _, d := range decls {
		if hasDirective(d.doc) && !claimed[d.name] {
			names = append(names, d.name)
		}
	}
	return names
}

func (p Package) interfaceNamed(name string) *types.Interface {
	obj, ok := p.Types.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil
	}
	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil
	}
	iface, _ := named.Underlying().(*types.Interface)
	return iface
}

// implementations returns the package's non-generic struct types assertable
// to iface, by value or pointer receiver, in declaration order.
func (p Package) implementations(iface *types.Interface, decls []typeDecl) []typeDecl {
	var impls []typeDecl
	for _, d := range decls {
		obj, ok := p.Types.Scope().Lookup(d.name).(*types.TypeName)
		if !ok {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		if _, isStruct := named.Underlying().(*types.Struct); !isStruct {
			continue
		}
		if !types.AssertableTo(iface, named) && !types.AssertableTo(iface, types.NewPointer(named)) {
			continue
		}
		impls = append(impls, d)
	}
	return impls
}

func (p Package) schemaFor(name string, decls []typeDecl, index map[string]typeDecl) (schema.TypeSchema, error) {
	obj, ok := p.Types.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s not found in package %s", name, p.Types.Path())
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s is not a defined type", name)
	}
	decl, ok := index[name]
	if !ok {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s: declaration not found in package syntax", name)
	}

	set, err := parseDirectives(name, decl.doc)
	if err != nil {
		return schema.TypeSchema{}, err
	}

	switch named.Underlying().(type) {
	case *types.Struct:
		return p.structSchema(named, decl, set)
	case *types.Interface:
		return p.sumSchema(named, decl, set, decls)
	default:
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s must be a struct or interface", name)
	}
}

// structSchema derives a single-variant schema: the struct is its own
// variant, named after the type.
func (p Package) structSchema(named *types.Named, decl typeDecl, set directiveSet) (schema.TypeSchema, error) {
	fields, err := p.fieldsOf(decl)
	if err != nil {
		return schema.TypeSchema{}, err
	}
	return schema.TypeSchema{
		Name:       decl.name,
		TypeParams: typeParamNames(named),
		Directives: schema.TypeDirectives{
			DeriveDebug: set.deriveDebug,
			Function:    set.function,
			Comma:       set.comma,
		},
		Variants: []schema.Variant{{
			Name:   decl.name,
			Fields: fields,
			Directives: schema.VariantDirectives{
				Dimension: set.dimension,
				Keyword:   set.keyword,
				Aliases:   set.aliases,
			},
		}},
	}, nil
}

// sumSchema derives a multi-variant schema from an interface: the variants
// are the package's implementing structs in declaration order.
func (p Package) sumSchema(named *types.Named, decl typeDecl, set directiveSet, decls []typeDecl) (schema.TypeSchema, error) {
	if named.TypeParams().Len() > 0 {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s: generic sum types are declared via manifests", decl.name)
	}
	if set.keyword != "" || set.dimension || len(set.aliases) > 0 {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s: keyword, dimension, and aliases belong on variant structs", decl.name)
	}

	iface := named.Underlying().(*types.Interface)
	impls := p.implementations(iface, decls)
	if len(impls) == 0 {
		return schema.TypeSchema{}, fmt.Errorf("gosource: type %s: no struct in package %s implements it", decl.name, p.Types.Path())
	}

	variants := make([]schema.Variant, 0, len(impls))
	for _, impl := range impls {
		vset, err := parseDirectives(impl.name, impl.doc)
		if err != nil {
			return schema.TypeSchema{}, err
		}
		if vset.deriveDebug {
			return schema.TypeSchema{}, fmt.Errorf("gosource: type %s: derive_debug belongs on the sum type %s", impl.name, decl.name)
		}
		fields, err := p.fieldsOf(impl)
		if err != nil {
			return schema.TypeSchema{}, err
		}
		variants = append(variants, schema.Variant{
			Name:   impl.name,
			Fields: fields,
			Directives: schema.VariantDirectives{
				Function:  vset.function,
				Comma:     vset.comma,
				Dimension: vset.dimension,
				Keyword:   vset.keyword,
				Aliases:   vset.aliases,
			},
		})
	}

	return schema.TypeSchema{
		Name: decl.name,
		Directives: schema.TypeDirectives{
			DeriveDebug: set.deriveDebug,
			Function:    set.function,
			Comma:       set.comma,
		},
		Variants: variants,
	}, nil
}

// fieldsOf reads the struct's field list from the AST so declared type
// expressions survive verbatim for bound inference.
func (p Package) fieldsOf(decl typeDecl) ([]schema.Field, error) {
	structType, ok := decl.spec.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("gosource: type %s: fields require a struct declaration, not an alias", decl.name)
	}

	var fields []schema.Field
	for _, field := range structType.Fields.List {
		var tag string
		if field.Tag != nil {
			if unquoted, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag = reflect.StructTag(unquoted).Get(tagName)
			}
		}
		typeExpr := types.ExprString(field.Type)

		if len(field.Names) == 0 {
			name := embeddedName(field.Type)
			directives, err := parseFieldTag(decl.name, name, tag)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.Field{Name: name, Type: typeExpr, Directives: directives})
			continue
		}
		for _, ident := range field.Names {
			directives, err := parseFieldTag(decl.name, ident.Name, tag)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.Field{Name: ident.Name, Type: typeExpr, Directives: directives})
		}
	}
	return fields, nil
}

// embeddedName resolves the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return ""
	}
}

func typeParamNames(named *types.Named) []string {
	params := named.TypeParams()
	if params.Len() == 0 {
		return nil
	}
	names := make([]string, params.Len())
	for i := range names {
		names[i] = params.At(i).Obj().Name()
	}
	return names
}
