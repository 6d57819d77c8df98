package generator

import (
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// renderField compiles one field's directives into its rendering fragment.
// The second result is false when the field contributes nothing: a skipped
// field is entirely absent from output and from bound inference.
func (r *run) renderField(f schema.Field) (ir.Node, bool) {
	d := f.Directives
	switch {
	case d.Skip:
		return nil, false

	case d.Iterable && d.IfEmpty != "":
		// Peek the iteration; an empty collection writes the fallback text
		// verbatim as a single item, otherwise every element becomes an
		// item. The element type's renderability is the iteration's
		// concern, so no bound is registered for the container.
		return ir.IterateOrLiteral{Field: f.Name, Fallback: d.IfEmpty}, true

	case d.Iterable:
		// Zero elements mean zero items and zero separators, not an error.
		return ir.IterateField{Field: f.Name}, true

	default:
		if !d.IgnoreBound {
			r.bounds.Require(f.Type)
		}
		return ir.SeqItem{Field: f.Name}, true
	}
}
