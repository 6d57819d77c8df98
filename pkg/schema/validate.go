package schema

import (
	"errors"
	"fmt"
)

// Error describes one illegal directive combination or malformed shape found
// during validation. It pins the offending type, variant, and field so the
// caller can point straight at the schema line that has to change.
type Error struct {
	Type    string
	Variant string
	Field   string
	Rule    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "schema: type " + e.Type
	if e.Variant != "" {
		msg += ", variant " + e.Variant
	}
	if e.Field != "" {
		msg += ", field " + e.Field
	}
	return msg + ": " + e.Rule
}

// Validate checks every invariant the generator depends on and reports all
// violations at once via errors.Join. Directive combinations are rejected
// here, eagerly, before any rendering logic is derived; they are never
// silently downgraded to a default.
func (s TypeSchema) Validate() error {
	var errs []error
	fail := func(variant, field, rule string, args ...any) {
		errs = append(errs, &Error{
			Type:    s.Name,
			Variant: variant,
			Field:   field,
			Rule:    fmt.Sprintf(rule, args...),
		})
	}

	if s.Name == "" {
		fail("", "", "type name is required")
	}
	if len(s.Variants) == 0 {
		fail("", "", "at least one variant is required")
	}

	if s.IsEnum() {
		if s.Directives.Function != nil {
			fail("", "", "type-level function directive is not allowed on a multi-variant schema")
		}
		if s.Directives.Comma {
			fail("", "", "type-level comma directive is not allowed on a multi-variant schema")
		}
	}

	seenVariants := make(map[string]struct{}, len(s.Variants))
	for _, v := range s.Variants {
		if v.Name == "" {
			fail("", "", "variant name is required")
			continue
		}
		if _, dup := seenVariants[v.Name]; dup {
			fail(v.Name, "", "variant name appears more than once")
		}
		seenVariants[v.Name] = struct{}{}

		s.validateVariant(v, fail)
	}

	return errors.Join(errs...)
}

func (s TypeSchema) validateVariant(v Variant, fail func(variant, field, rule string, args ...any)) {
	d := v.Directives

	// The dimension and keyword checks run against the raw binding count:
	// skip-filtering is deliberately not applied for them.
	if d.Dimension {
		if d.Function != nil {
			fail(v.Name, "", "dimension cannot be combined with function")
		}
		if d.Keyword != "" {
			fail(v.Name, "", "dimension cannot be combined with keyword")
		}
		if len(v.Fields) != 1 {
			fail(v.Name, "", "dimension requires exactly one field, found %d", len(v.Fields))
		}
	}
	if d.Keyword != "" && len(v.Fields) != 0 {
		fail(v.Name, "", "keyword requires a variant without fields, found %d", len(v.Fields))
	}

	seenFields := make(map[string]struct{}, len(v.Fields))
	for _, f := range v.Fields {
		if f.Name == "" {
			fail(v.Name, "", "field name is required")
			continue
		}
		if _, dup := seenFields[f.Name]; dup {
			fail(v.Name, f.Name, "field name appears more than once")
		}
		seenFields[f.Name] = struct{}{}

		if f.Directives.IfEmpty != "" && !f.Directives.Iterable {
			fail(v.Name, f.Name, "if_empty is only meaningful on an iterable field")
		}
	}
}
