package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-cssgen/pkg/naming"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// describeType prints one declared type as a table, one row per variant. The
// RENDERS column shows the external spelling dispatch resolves to, not the
// full grammar; pass -grammar for that.
func describeType(out io.Writer, s schema.TypeSchema) {
	title := s.Name
	if len(s.TypeParams) > 0 {
		title += "[" + strings.Join(s.TypeParams, ", ") + "]"
	}
	if s.Directives.DeriveDebug {
		title += "  (debug)"
	}
	fmt.Fprintln(out, title)

	table := tablewriter.NewWriter(out)
	table.SetNoWhiteSpace(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"VARIANT  ", "RENDERS  ", "FIELDS  ", "DIRECTIVES  ", "ALIASES  "})

	for _, v := range s.Variants {
		table.Append([]string{
			v.Name + "   ",
			rendersCell(v) + "   ",
			fieldsCell(v.Fields) + "   ",
			directivesCell(s, v) + "   ",
			aliasesCell(v.Directives.Aliases) + "   ",
		})
	}
	table.Render()
	fmt.Fprintln(out)
}

// rendersCell is the identifier the variant contributes to output: the
// keyword override when present, otherwise the canonical spelling of its
// name. Variants with fields render values around it, which the grammar
// output spells out.
func rendersCell(v schema.Variant) string {
	if v.Directives.Keyword != "" {
		return v.Directives.Keyword
	}
	ident := naming.ToCSSIdentifier(v.Name)
	if fn := v.Directives.Function; fn != nil {
		return fn.Resolve(ident) + "(...)"
	}
	if v.Directives.Dimension {
		return "<value>" + ident
	}
	return ident
}

func fieldsCell(fields []schema.Field) string {
	if len(fields) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		part := f.Name + " " + f.Type
		var marks []string
		if f.Directives.Skip {
			marks = append(marks, "skip")
		}
		if f.Directives.Iterable {
			marks = append(marks, "iterable")
		}
		if f.Directives.IfEmpty != "" {
			marks = append(marks, "if_empty="+f.Directives.IfEmpty)
		}
		if f.Directives.IgnoreBound {
			marks = append(marks, "ignore_bound")
		}
		if len(marks) > 0 {
			part += " (" + strings.Join(marks, ", ") + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func directivesCell(s schema.TypeSchema, v schema.Variant) string {
	var parts []string
	fn := v.Directives.Function
	comma := v.Directives.Comma
	if !s.IsEnum() {
		if fn == nil {
			fn = s.Directives.Function
		}
		comma = comma || s.Directives.Comma
	}
	if fn != nil {
		if name, ok := fn.Explicit(); ok {
			parts = append(parts, "function="+name)
		} else {
			parts = append(parts, "function")
		}
	}
	if comma {
		parts = append(parts, "comma")
	}
	if v.Directives.Dimension {
		parts = append(parts, "dimension")
	}
	if v.Directives.Keyword != "" {
		parts = append(parts, "keyword="+v.Directives.Keyword)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func aliasesCell(aliases []string) string {
	if len(aliases) == 0 {
		return "-"
	}
	return strings.Join(aliases, ", ")
}
