// Package dynamic executes rendering programs over live Go values through
// reflection, without generating source. It backs quick previews and the
// behavioral test suite; generated code from the gosrc backend renders the
// same text for the same program and value.
package dynamic

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goliatone/go-cssgen/pkg/css"
	"github.com/goliatone/go-cssgen/pkg/ir"
)

// Renderer renders values of one compiled program's type.
type Renderer struct {
	typeName string
	arms     map[string]ir.Node
}

// Compile prepares a Renderer for the program. The program's variant set is
// the closed world: values whose concrete type matches no variant are
// rejected at render time.
func Compile(program *ir.Program) (*Renderer, error) {
	if program == nil {
		return nil, fmt.Errorf("dynamic: program is required")
	}

	arms := make(map[string]ir.Node, len(program.Arms))
	for _, arm := range program.Arms {
		arms[arm.Variant] = arm.Body
	}
	return &Renderer{typeName: program.TypeName, arms: arms}, nil
}

// Render writes the CSS serialization of value into w.
func (r *Renderer) Render(value any, w io.Writer) error {
	return r.Append(value, css.NewWriter(w))
}

// RenderString renders value into a fresh buffer.
func (r *Renderer) RenderString(value any) (string, error) {
	var b strings.Builder
	if err := r.Render(value, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Append dispatches on the concrete type name of value and walks the
// matching arm.
func (r *Renderer) Append(value any, dest *css.Writer) error {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("dynamic: cannot render nil %s value", r.typeName)
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return fmt.Errorf("dynamic: cannot render nil %s value", r.typeName)
	}

	body, ok := r.arms[variantName(v.Type())]
	if !ok {
		return fmt.Errorf("dynamic: no %s variant matches %T", r.typeName, value)
	}
	return r.exec(body, v, dest)
}

// variantName maps a concrete type to its schema variant name. Instantiated
// generic types carry their arguments in Name, which dispatch ignores.
func variantName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func (r *Renderer) exec(n ir.Node, v reflect.Value, dest *css.Writer) error {
	switch n := n.(type) {
	case ir.WriteLiteral:
		return dest.WriteString(n.Text)

	case ir.RenderValue:
		field, err := r.field(v, n.Field)
		if err != nil {
			return err
		}
		return leaf{v: field}.AppendCSS(dest)

	case ir.Sequence:
		seq := css.NewSequenceWriter(dest, n.Separator)
		for _, item := range n.Items {
			if err := r.seqItem(item, v, seq); err != nil {
				return err
			}
		}
		return nil

	case ir.Wrap:
		switch n.Kind {
		case ir.WrapFunction:
			if err := dest.WriteString(n.Name + "("); err != nil {
				return err
			}
			if err := r.exec(n.Body, v, dest); err != nil {
				return err
			}
			return dest.WriteString(")")
		case ir.WrapDimension:
			if err := r.exec(n.Body, v, dest); err != nil {
				return err
			}
			return dest.WriteString(n.Name)
		default:
			return fmt.Errorf("dynamic: unsupported wrap kind %v", n.Kind)
		}

	default:
		return fmt.Errorf("dynamic: unsupported node %T", n)
	}
}

func (r *Renderer) seqItem(n ir.Node, v reflect.Value, seq *css.SequenceWriter) error {
	switch n := n.(type) {
	case ir.SeqItem:
		field, err := r.field(v, n.Field)
		if err != nil {
			return err
		}
		return seq.Item(leaf{v: field})

	case ir.IterateField:
		return r.iterate(v, n.Field, seq)

	case ir.IterateOrLiteral:
		field, err := r.field(v, n.Field)
		if err != nil {
			return err
		}
		if err := iterable(field, n.Field); err != nil {
			return err
		}
		if field.Len() == 0 {
			return seq.Literal(n.Fallback)
		}
		return r.elements(field, seq)

	default:
		return fmt.Errorf("dynamic: unsupported sequence item %T", n)
	}
}

func (r *Renderer) iterate(v reflect.Value, name string, seq *css.SequenceWriter) error {
	field, err := r.field(v, name)
	if err != nil {
		return err
	}
	if err := iterable(field, name); err != nil {
		return err
	}
	return r.elements(field, seq)
}

func (r *Renderer) elements(field reflect.Value, seq *css.SequenceWriter) error {
	for i := 0; i < field.Len(); i++ {
		if err := seq.Item(leaf{v: field.Index(i)}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) field(v reflect.Value, name string) (reflect.Value, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("dynamic: %s value is not a struct", v.Type())
	}
	field := v.FieldByName(name)
	if !field.IsValid() {
		return reflect.Value{}, fmt.Errorf("dynamic: type %s has no field %s", v.Type(), name)
	}
	return field, nil
}

func iterable(field reflect.Value, name string) error {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		return nil
	default:
		return fmt.Errorf("dynamic: field %s is %s, not a slice or array", name, field.Kind())
	}
}
