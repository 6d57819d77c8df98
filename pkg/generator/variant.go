package generator

import (
	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// renderVariant compiles one variant into the node tree that renders it:
// the field fragments composed under the variant's separator, with the
// keyword, function, and dimension directives layered on top.
func (r *run) renderVariant(v schema.Variant) ir.Node {
	ident := r.identifier(v.Name)
	d := v.Directives

	var body ir.Node
	if d.Keyword != "" {
		// Validation already forced a field-less variant; the keyword text
		// is written as-is, outside any separator logic.
		body = ir.WriteLiteral{Text: d.Keyword}
	} else {
		body = r.renderFields(v, ident)
	}

	switch {
	case d.Dimension:
		body = ir.Wrap{Kind: ir.WrapDimension, Name: ident, Body: body}
	case d.Function != nil:
		body = ir.Wrap{Kind: ir.WrapFunction, Name: d.Function.Resolve(ident), Body: body}
	}
	return body
}

// renderFields compiles the variant's field list in declaration order.
func (r *run) renderFields(v schema.Variant, ident string) ir.Node {
	items := make([]ir.Node, 0, len(v.Fields))
	for _, f := range v.Fields {
		node, ok := r.renderField(f)
		if !ok {
			continue
		}
		items = append(items, node)
	}

	switch {
	case len(items) == 0:
		// No active fields: the variant renders as its canonical
		// identifier.
		return ir.WriteLiteral{Text: ident}

	case len(items) == 1:
		// A lone direct field bypasses the sequence machinery. The bypass
		// is observably identical to a one-item sequence; iterable fields
		// stay on the sequence path because they may emit many items.
		if item, ok := items[0].(ir.SeqItem); ok {
			return ir.RenderValue{Field: item.Field}
		}
		return ir.Sequence{Separator: v.Directives.Separator(), Items: items}

	default:
		return ir.Sequence{Separator: v.Directives.Separator(), Items: items}
	}
}
