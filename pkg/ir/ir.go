// Package ir is the intermediate representation produced by the generator and
// consumed by backends: a Program describes the complete rendering procedure
// for one type as dispatch arms of composable nodes, decoupling what to
// render from how a backend textually expresses it.
package ir

// Program is the rendering procedure for one type schema. It carries no
// state beyond its structure and may be handed to any number of backends.
type Program struct {
	// TypeName is the structural name of the type the procedure renders.
	TypeName string

	// TypeParams lists the type's generic parameters in declaration order,
	// each annotated with the outcome of bound inference.
	TypeParams []TypeParam

	// Arms holds one dispatch arm per variant, in declaration order. The
	// dispatch is exhaustive over the schema's variant set by construction.
	Arms []Arm

	// EmitDebug requests the secondary debug-text entry point delegating to
	// the main procedure through an adapter sink.
	EmitDebug bool
}

// TypeParam is one generic parameter of the rendered type.
type TypeParam struct {
	Name string

	// RequiresBound marks parameters whose values are rendered directly
	// somewhere in the procedure and therefore must carry the rendering
	// capability.
	RequiresBound bool
}

// Arm maps one variant to the node tree that renders it.
type Arm struct {
	Variant string
	Body    Node

	// Aliases carries the variant's alternative external spellings.
	// Rendering ignores them; documentation backends surface them.
	Aliases []string
}

// Arm returns the dispatch arm for the named variant.
func (p *Program) Arm(variant string) (Arm, bool) {
	for _, arm := range p.Arms {
		if arm.Variant == variant {
			return arm, true
		}
	}
	return Arm{}, false
}

// Generic reports whether the rendered type declares type parameters.
func (p *Program) Generic() bool {
	return len(p.TypeParams) > 0
}

// BoundParams returns the names of type parameters requiring the rendering
// capability, in declaration order.
func (p *Program) BoundParams() []string {
	var names []string
	for _, tp := range p.TypeParams {
		if tp.RequiresBound {
			names = append(names, tp.Name)
		}
	}
	return names
}

// Node is one composable unit of rendering logic. The concrete types below
// form a closed set; backends dispatch over them exhaustively.
//
// SeqItem, IterateField, and IterateOrLiteral only appear as items of a
// Sequence; the remaining nodes stand alone.
type Node interface {
	node()
}

// WriteLiteral writes fixed text: a keyword, or an empty variant's canonical
// identifier.
type WriteLiteral struct {
	Text string
}

// RenderValue renders a single field's value directly through its rendering
// capability, bypassing sequence machinery. It is the one-field fast path
// and is observably identical to a one-item Sequence.
type RenderValue struct {
	Field string

	// Dynamic marks a render site whose static type cannot promise the
	// rendering capability, because the field's type mentions a parameter
	// left out of the bound set. Backends producing statically typed code
	// defer the capability check to render time at such sites.
	Dynamic bool
}

// Sequence renders its items through a sequence writer so the separator
// appears between successive non-empty items only.
type Sequence struct {
	Separator string
	Items     []Node
}

// SeqItem renders one field's value as a single sequence item.
type SeqItem struct {
	Field string

	// Dynamic has the same meaning as on RenderValue.
	Dynamic bool
}

// IterateField renders every element of a field as successive sequence
// items. An empty collection contributes no items and no separators.
type IterateField struct {
	Field string

	// Dynamic has the same meaning as on RenderValue, applied to the
	// element type. Iterated parameters are exempt from bound inference,
	// so iteration over a parameter's values is dynamic unless another
	// field bound that parameter.
	Dynamic bool
}

// IterateOrLiteral renders every element of a field as successive sequence
// items, or, when the collection is empty, writes the fallback text verbatim
// as a single item.
type IterateOrLiteral struct {
	Field    string
	Fallback string

	// Dynamic has the same meaning as on IterateField.
	Dynamic bool
}

// WrapKind selects the post-processing applied around a variant's base
// output.
type WrapKind int

const (
	// WrapFunction writes "Name(", the body, then ")"; a failure inside the
	// body propagates before the closing parenthesis is written.
	WrapFunction WrapKind = iota

	// WrapDimension writes the body, then Name immediately after with no
	// separator, as in "3px".
	WrapDimension
)

// String names the wrap kind for diagnostics.
func (k WrapKind) String() string {
	switch k {
	case WrapFunction:
		return "function"
	case WrapDimension:
		return "dimension"
	default:
		return "unknown"
	}
}

// Wrap layers function-call wrapping or dimension suffixing over a base
// node. The Name is already resolved: the explicit function override or the
// canonical identifier.
type Wrap struct {
	Kind WrapKind
	Name string
	Body Node
}

func (WriteLiteral) node()     {}
func (RenderValue) node()      {}
func (Sequence) node()         {}
func (SeqItem) node()          {}
func (IterateField) node()     {}
func (IterateOrLiteral) node() {}
func (Wrap) node()             {}
