package gosrc

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cssgen/internal/codewriter"
	"github.com/goliatone/go-cssgen/pkg/ir"
)

// emitter lowers one program into the body of one file.
type emitter struct {
	w       *codewriter.Writer
	program *ir.Program
	cssPkg  string
}

// emitMethods writes the non-generic form: one AppendCSS method per variant
// struct, an exhaustive dispatch helper when the type has multiple variants,
// and String methods when the program asks for debug text.
func (e *emitter) emitMethods() error {
	for _, arm := range e.program.Arms {
		e.w.Linef("// AppendCSS writes the CSS serialization of v into dest.")
		e.w.Linef("func (v %s) AppendCSS(dest *%s.Writer) error {", arm.Variant, e.cssPkg)
		if err := e.node(arm.Body, true); err != nil {
			return err
		}
		e.w.Linef("}")
		e.w.Blank()
	}

	if len(e.program.Arms) > 1 {
		e.emitDispatch()
	}

	if e.program.EmitDebug {
		for _, arm := range e.program.Arms {
			e.w.Linef("// String returns the CSS serialization of v.")
			e.w.Linef("func (v %s) String() string {", arm.Variant)
			e.w.Linef("return %s.MustAppendString(v)", e.cssPkg)
			e.w.Linef("}")
			e.w.Blank()
		}
	}
	return nil
}

// emitDispatch writes the helper that renders any value of the sum type by
// concrete variant. The variant set is closed, so an unlisted type is an
// error, not a fallback.
func (e *emitter) emitDispatch() {
	fmtPkg := e.w.Import("fmt", "fmt")
	name := e.w.Name("Append" + e.program.TypeName + "CSS")

	e.w.Linef("// %s renders any %s value into dest.", name, e.program.TypeName)
	e.w.Linef("func %s(v any, dest *%s.Writer) error {", name, e.cssPkg)
	e.w.Linef("switch v := v.(type) {")
	for _, arm := range e.program.Arms {
		e.w.Linef("case %s:", arm.Variant)
		e.w.Linef("return v.AppendCSS(dest)")
	}
	e.w.Linef("default:")
	e.w.Linef("return %s.Errorf(\"unsupported %s variant %%T\", v)", fmtPkg, e.program.TypeName)
	e.w.Linef("}")
	e.w.Linef("}")
	e.w.Blank()
}

// emitFunctions writes the generic form: standalone functions whose type
// parameter lists restate the schema's parameters with the inferred
// constraints, css.Appender where the bound set requires rendering and any
// elsewhere.
func (e *emitter) emitFunctions() error {
	decl := e.typeParamDecl()
	inst := e.typeParamInst()

	for _, arm := range e.program.Arms {
		name := e.w.Name("Append" + arm.Variant + "CSS")
		e.w.Linef("// %s writes the CSS serialization of v into dest.", name)
		e.w.Linef("func %s%s(v %s%s, dest *%s.Writer) error {", name, decl, arm.Variant, inst, e.cssPkg)
		if err := e.node(arm.Body, true); err != nil {
			return err
		}
		e.w.Linef("}")
		e.w.Blank()
	}

	if e.program.EmitDebug {
		stringsPkg := e.w.Import("strings", "strings")
		for _, arm := range e.program.Arms {
			name := e.w.Name(arm.Variant + "String")
			e.w.Linef("// %s returns the CSS serialization of v.", name)
			e.w.Linef("func %s%s(v %s%s) string {", name, decl, arm.Variant, inst)
			e.w.Linef("var b %s.Builder", stringsPkg)
			e.w.Linef("if err := Append%sCSS(v, %s.NewWriter(&b)); err != nil {", arm.Variant, e.cssPkg)
			e.w.Linef("panic(err)")
			e.w.Linef("}")
			e.w.Linef("return b.String()")
			e.w.Linef("}")
			e.w.Blank()
		}
	}
	return nil
}

// typeParamDecl renders the bracketed parameter list with constraints, like
// "[C css.Appender, L any]".
func (e *emitter) typeParamDecl() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range e.program.TypeParams {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteByte(' ')
		if p.RequiresBound {
			b.WriteString(e.cssPkg + ".Appender")
		} else {
			b.WriteString("any")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// typeParamInst renders the bracketed instantiation list, like "[C, L]".
func (e *emitter) typeParamInst() string {
	names := make([]string, len(e.program.TypeParams))
	for i, p := range e.program.TypeParams {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// node writes the statements for one node. In tail position simple nodes
// collapse to a single return; composite nodes end with return nil at the
// arm level instead.
func (e *emitter) node(n ir.Node, tail bool) error {
	switch n := n.(type) {
	case ir.WriteLiteral:
		e.stmt(fmt.Sprintf("dest.WriteString(%q)", n.Text), tail)

	case ir.RenderValue:
		e.stmt(e.renderCall(n.Field, n.Dynamic), tail)

	case ir.Sequence:
		e.w.Linef("seq := %s.NewSequenceWriter(dest, %q)", e.cssPkg, n.Separator)
		for _, item := range n.Items {
			if err := e.seqItem(item); err != nil {
				return err
			}
		}
		if tail {
			e.w.Linef("return nil")
		}

	case ir.Wrap:
		switch n.Kind {
		case ir.WrapFunction:
			e.stmt(fmt.Sprintf("dest.WriteString(%q)", n.Name+"("), false)
			if err := e.node(n.Body, false); err != nil {
				return err
			}
			e.stmt(`dest.WriteString(")")`, tail)
		case ir.WrapDimension:
			if err := e.node(n.Body, false); err != nil {
				return err
			}
			e.stmt(fmt.Sprintf("dest.WriteString(%q)", n.Name), tail)
		default:
			return fmt.Errorf("gosrc: unsupported wrap kind %v", n.Kind)
		}

	default:
		return fmt.Errorf("gosrc: unsupported node %T", n)
	}
	return nil
}

// seqItem writes the statements feeding one item node into the sequence
// writer held in seq.
func (e *emitter) seqItem(n ir.Node) error {
	switch n := n.(type) {
	case ir.SeqItem:
		e.check(fmt.Sprintf("seq.Item(%s)", e.value("v."+n.Field, n.Dynamic)))

	case ir.IterateField:
		e.w.Linef("for _, item := range v.%s {", n.Field)
		e.check(fmt.Sprintf("seq.Item(%s)", e.value("item", n.Dynamic)))
		e.w.Linef("}")

	case ir.IterateOrLiteral:
		e.w.Linef("if len(v.%s) == 0 {", n.Field)
		e.check(fmt.Sprintf("seq.Literal(%q)", n.Fallback))
		e.w.Linef("} else {")
		e.w.Linef("for _, item := range v.%s {", n.Field)
		e.check(fmt.Sprintf("seq.Item(%s)", e.value("item", n.Dynamic)))
		e.w.Linef("}")
		e.w.Linef("}")

	default:
		return fmt.Errorf("gosrc: unsupported sequence item %T", n)
	}
	return nil
}

// renderCall formulates rendering one field value straight into dest.
func (e *emitter) renderCall(field string, dynamic bool) string {
	if dynamic {
		return fmt.Sprintf("%s.ValueOf(v.%s).AppendCSS(dest)", e.cssPkg, field)
	}
	return fmt.Sprintf("v.%s.AppendCSS(dest)", field)
}

// value formulates an expression usable as a sequence item.
func (e *emitter) value(expr string, dynamic bool) string {
	if dynamic {
		return fmt.Sprintf("%s.ValueOf(%s)", e.cssPkg, expr)
	}
	return expr
}

// stmt writes one error-returning call, collapsed to a plain return in tail
// position.
func (e *emitter) stmt(call string, tail bool) {
	if tail {
		e.w.Linef("return %s", call)
	} else {
		e.check(call)
	}
}

// check writes the guarded form of one error-returning call.
func (e *emitter) check(call string) {
	e.w.Linef("if err := %s; err != nil {", call)
	e.w.Linef("return err")
	e.w.Linef("}")
}
