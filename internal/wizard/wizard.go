// Package wizard drives the interactive scaffolding flow behind cssgen init:
// it walks the user through declaring types, variants, and fields, and
// returns validated schemas ready to encode as a manifest.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cssgen/internal/prompt"
	"github.com/goliatone/go-cssgen/pkg/naming"
	"github.com/goliatone/go-cssgen/pkg/schema"
)

// Option customises the wizard.
type Option func(*Wizard)

// WithDriver swaps the prompt implementation, mainly for tests.
func WithDriver(d prompt.Driver) Option {
	return func(w *Wizard) {
		if d != nil {
			w.driver = d
		}
	}
}

// Wizard collects type declarations interactively.
type Wizard struct {
	driver prompt.Driver
}

// New constructs a Wizard, defaulting to the interactive survey driver.
func New(options ...Option) *Wizard {
	w := &Wizard{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.driver == nil {
		w.driver = prompt.NewSurveyDriver()
	}
	return w
}

// Run walks the user through declaring one or more types and returns the
// resulting schemas, each already validated.
func (w *Wizard) Run(ctx context.Context) ([]schema.TypeSchema, error) {
	var schemas []schema.TypeSchema
	for {
		s, err := w.collectType(ctx)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)

		more, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Declare another type?",
		})
		if err != nil {
			return nil, err
		}
		if !more {
			return schemas, nil
		}
	}
}

func (w *Wizard) collectType(ctx context.Context) (schema.TypeSchema, error) {
	raw, err := w.driver.Input(ctx, prompt.InputConfig{
		Message:   "Type name",
		Help:      "The Go type the generated renderer attaches to, e.g. Display",
		Validator: requireName,
	})
	if err != nil {
		return schema.TypeSchema{}, err
	}
	typeName := GoName(raw)

	deriveDebug, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Generate a debug String() method?",
		Help:    "Adds a Stringer that renders through the same serializer",
	})
	if err != nil {
		return schema.TypeSchema{}, err
	}

	s := schema.TypeSchema{
		Name:       typeName,
		Directives: schema.TypeDirectives{DeriveDebug: deriveDebug},
	}

	for {
		variant, err := w.collectVariant(ctx, typeName, len(s.Variants))
		if err != nil {
			return schema.TypeSchema{}, err
		}
		s.Variants = append(s.Variants, variant)

		more, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Add another variant?",
		})
		if err != nil {
			return schema.TypeSchema{}, err
		}
		if !more {
			break
		}
	}

	if err := s.Validate(); err != nil {
		return schema.TypeSchema{}, fmt.Errorf("wizard: scaffolded schema is invalid: %w", err)
	}
	if err := w.driver.Info(ctx, fmt.Sprintf("Added %s with %d variants.", typeName, len(s.Variants))); err != nil {
		return schema.TypeSchema{}, err
	}
	return s, nil
}

func (w *Wizard) collectVariant(ctx context.Context, typeName string, index int) (schema.Variant, error) {
	defaultName := ""
	if index == 0 {
		defaultName = typeName
	}
	raw, err := w.driver.Input(ctx, prompt.InputConfig{
		Message:   "Variant name",
		Default:   defaultName,
		Validator: requireName,
	})
	if err != nil {
		return schema.Variant{}, err
	}
	name := GoName(raw)
	ident := naming.ToCSSIdentifier(name)

	styleIdx, err := w.driver.Select(ctx, prompt.SelectConfig{
		Message: fmt.Sprintf("How does %s render?", name),
		Options: []string{
			fmt.Sprintf("keyword %q (the canonical identifier)", ident),
			"an explicit keyword text",
			"one or more fields",
		},
	})
	if err != nil {
		return schema.Variant{}, err
	}

	v := schema.Variant{Name: name}
	switch styleIdx {
	case 1:
		keyword, err := w.driver.Input(ctx, prompt.InputConfig{
			Message:   "Keyword text",
			Default:   ident,
			Validator: requireName,
		})
		if err != nil {
			return schema.Variant{}, err
		}
		v.Directives.Keyword = strings.TrimSpace(keyword)
	case 2:
		if err := w.collectFields(ctx, &v, ident); err != nil {
			return schema.Variant{}, err
		}
	}

	if len(v.Fields) == 0 {
		aliases, err := w.driver.Input(ctx, prompt.InputConfig{
			Message: "Alias spellings (comma separated, optional)",
			Help:    "Alternative external spellings, e.g. -webkit-inline-flex",
		})
		if err != nil {
			return schema.Variant{}, err
		}
		v.Directives.Aliases = splitList(aliases)
	}
	return v, nil
}

func (w *Wizard) collectFields(ctx context.Context, v *schema.Variant, ident string) error {
	iterable := false
	for {
		field, err := w.collectField(ctx)
		if err != nil {
			return err
		}
		v.Fields = append(v.Fields, field)
		iterable = iterable || field.Directives.Iterable

		more, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Add another field?",
		})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	// The separator matters whenever more than one item can render, either
	// through multiple fields or through an iterated one.
	if len(v.Fields) > 1 || iterable {
		comma, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Separate items with commas?",
		})
		if err != nil {
			return err
		}
		v.Directives.Comma = comma
	}

	options := []string{"no wrapping", "function notation"}
	if len(v.Fields) == 1 {
		options = append(options, "dimension unit suffix")
	}
	wrapIdx, err := w.driver.Select(ctx, prompt.SelectConfig{
		Message: "Wrap the rendered value?",
		Options: options,
	})
	if err != nil {
		return err
	}
	switch wrapIdx {
	case 1:
		fnName, err := w.driver.Input(ctx, prompt.InputConfig{
			Message: "Function name",
			Default: ident,
			Help:    "Empty or the canonical identifier keeps the derived name",
		})
		if err != nil {
			return err
		}
		fnName = strings.TrimSpace(fnName)
		if fnName == "" || fnName == ident {
			v.Directives.Function = schema.InheritedFunctionName()
		} else {
			v.Directives.Function = schema.ExplicitFunctionName(fnName)
		}
	case 2:
		v.Directives.Dimension = true
	}
	return nil
}

func (w *Wizard) collectField(ctx context.Context) (schema.Field, error) {
	raw, err := w.driver.Input(ctx, prompt.InputConfig{
		Message:   "Field name",
		Validator: requireName,
	})
	if err != nil {
		return schema.Field{}, err
	}

	typeExpr, err := w.driver.Input(ctx, prompt.InputConfig{
		Message: "Field type",
		Help:    "Go type expression, e.g. Length or []ColorStop",
	})
	if err != nil {
		return schema.Field{}, err
	}
	typeExpr = strings.TrimSpace(typeExpr)

	field := schema.Field{Name: GoName(raw), Type: typeExpr}

	if strings.HasPrefix(typeExpr, "[]") {
		iterable, err := w.driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Render each element as its own item?",
			Default: true,
		})
		if err != nil {
			return schema.Field{}, err
		}
		field.Directives.Iterable = iterable

		if iterable {
			fallback, err := w.driver.Input(ctx, prompt.InputConfig{
				Message: "Fallback text when empty (optional)",
			})
			if err != nil {
				return schema.Field{}, err
			}
			field.Directives.IfEmpty = strings.TrimSpace(fallback)
		}
	}
	return field, nil
}

var titler = cases.Title(language.English, cases.NoLower)

// GoName normalizes free-form input into an exported Go identifier:
// "inline flex" and "inline-flex" both become InlineFlex.
func GoName(raw string) string {
	segments := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(titler.String(segment))
	}
	return b.String()
}

func requireName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("a name is required")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
