// Package generator compiles a validated type schema into the intermediate
// representation backends lower to source text or executable renderers. One
// Compile call is one single-pass, synchronous generation: schema in,
// program out, with the bound set threaded through the field and variant
// renderers and consumed exactly once at the end.
package generator

import (
	"fmt"

	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/naming"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// IdentifierFunc converts a structural name to its canonical external
// spelling. The function must be pure, total, and order-preserving over the
// identifier's characters.
type IdentifierFunc func(string) string

// Option customises a Generator.
type Option func(*Generator)

// WithIdentifierTransform overrides the canonical identifier transform. The
// default is naming.ToCSSIdentifier.
func WithIdentifierTransform(fn IdentifierFunc) Option {
	return func(g *Generator) {
		if fn != nil {
			g.identifier = fn
		}
	}
}

// Generator turns type schemas into rendering programs. The zero cost of
// construction makes it safe to create one per use; a single Generator is
// also safe for concurrent Compile calls because each call owns its state.
type Generator struct {
	identifier IdentifierFunc
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{identifier: naming.ToCSSIdentifier}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// run holds the state of one generation pass: the identifier transform and
// the bound set shared by the field and variant renderers.
type run struct {
	identifier IdentifierFunc
	bounds     *boundSet
}

// Compile validates the schema and produces its rendering program. Schema
// errors halt generation for the offending type and identify the variant or
// field at fault; nothing is ever silently downgraded.
func (g *Generator) Compile(s schema.TypeSchema) (*ir.Program, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	s = normalize(s)

	r := &run{
		identifier: g.identifier,
		bounds:     newBoundSet(s.TypeParams),
	}

	prog := &ir.Program{
		TypeName:  s.Name,
		EmitDebug: s.Directives.DeriveDebug,
		Arms:      make([]ir.Arm, 0, len(s.Variants)),
	}

	for _, v := range s.Variants {
		prog.Arms = append(prog.Arms, ir.Arm{
			Variant: v.Name,
			Body:    r.renderVariant(v),
			Aliases: v.Directives.Aliases,
		})
	}

	// Bounds are final only once every variant has been visited; a later
	// variant may bind a parameter an earlier one merely iterates.
	for i, v := range s.Variants {
		prog.Arms[i].Body = r.markDynamic(prog.Arms[i].Body, v.FieldTypes())
	}

	for _, param := range s.TypeParams {
		prog.TypeParams = append(prog.TypeParams, ir.TypeParam{
			Name:          param,
			RequiresBound: r.bounds.Requires(param),
		})
	}

	return prog, nil
}

// markDynamic rewrites render sites whose field type mentions an unbound
// parameter. Such sites cannot rely on a static capability, so backends
// lowering to typed code must check at render time instead.
func (r *run) markDynamic(n ir.Node, types map[string]string) ir.Node {
	switch n := n.(type) {
	case ir.RenderValue:
		n.Dynamic = r.bounds.mentionsUnbound(types[n.Field])
		return n
	case ir.SeqItem:
		n.Dynamic = r.bounds.mentionsUnbound(types[n.Field])
		return n
	case ir.IterateField:
		n.Dynamic = r.bounds.mentionsUnbound(types[n.Field])
		return n
	case ir.IterateOrLiteral:
		n.Dynamic = r.bounds.mentionsUnbound(types[n.Field])
		return n
	case ir.Sequence:
		for i := range n.Items {
			n.Items[i] = r.markDynamic(n.Items[i], types)
		}
		return n
	case ir.Wrap:
		n.Body = r.markDynamic(n.Body, types)
		return n
	default:
		return n
	}
}

// normalize folds type-level directives into the sole variant of a
// single-variant schema: a struct's variant is also its whole type
// definition, so function and comma may arrive at either level. The
// variant-level directive wins when both are set. Multi-variant schemas
// were already rejected by validation if they carried these directives.
func normalize(s schema.TypeSchema) schema.TypeSchema {
	if len(s.Variants) != 1 {
		return s
	}

	v := s.Variants[0]
	changed := false
	if v.Directives.Function == nil && s.Directives.Function != nil {
		v.Directives.Function = s.Directives.Function
		changed = true
	}
	if s.Directives.Comma && !v.Directives.Comma {
		v.Directives.Comma = true
		changed = true
	}
	if !changed {
		return s
	}

	out := s
	out.Variants = []schema.Variant{v}
	return out
}
