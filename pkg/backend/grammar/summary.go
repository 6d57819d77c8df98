package grammar

import (
	"strings"

	"github.com/goliatone/go-cssgen/pkg/ir"
	"github.com/goliatone/go-cssgen/pkg/naming"
)

// variantSummary is one variant's line in the rendered grammar. Field names
// surface in templates through their JSON keys.
type variantSummary struct {
	Name      string `json:"name"`
	Syntax    string `json:"syntax"`
	AliasNote string `json:"alias_note"`
}

func summarize(arm ir.Arm) variantSummary {
	note := ""
	if len(arm.Aliases) > 0 {
		note = "  [aliases: " + strings.Join(arm.Aliases, ", ") + "]"
	}
	return variantSummary{
		Name:      arm.Variant,
		Syntax:    syntax(arm.Body, " "),
		AliasNote: note,
	}
}

// syntax writes a node in value-definition style: placeholders in angle
// brackets, "#" for comma-repeated items, "+" for space-repeated ones.
func syntax(n ir.Node, sep string) string {
	switch n := n.(type) {
	case ir.WriteLiteral:
		return n.Text

	case ir.RenderValue:
		return placeholder(n.Field)

	case ir.Sequence:
		parts := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			parts = append(parts, syntax(item, n.Separator))
		}
		return strings.Join(parts, n.Separator)

	case ir.SeqItem:
		return placeholder(n.Field)

	case ir.IterateField:
		return placeholder(n.Field) + multiplier(sep)

	case ir.IterateOrLiteral:
		return "[ " + placeholder(n.Field) + multiplier(sep) + " | " + n.Fallback + " ]"

	case ir.Wrap:
		if n.Kind == ir.WrapDimension {
			return syntax(n.Body, sep) + n.Name
		}
		return n.Name + "( " + syntax(n.Body, sep) + " )"

	default:
		return ""
	}
}

func placeholder(field string) string {
	return "<" + naming.ToCSSIdentifier(field) + ">"
}

func multiplier(sep string) string {
	if strings.Contains(sep, ",") {
		return "#"
	}
	return "+"
}
