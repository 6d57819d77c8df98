package gosource

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// tagName is the struct tag key carrying field directives.
const tagName = "css"

// parseFieldTag interprets a css struct tag value as field directives. The
// value is a comma-separated option list: "-" or "skip", "iterable",
// "ignore_bound", and "if_empty=<text>".
func parseFieldTag(typeName, fieldName, tag string) (schema.FieldDirectives, error) {
	var directives schema.FieldDirectives
	if tag == "" {
		return directives, nil
	}

	for _, option := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(option, "=")
		if hasValue && key != "if_empty" {
			return schema.FieldDirectives{}, fmt.Errorf("gosource: type %s: field %s: tag option %q takes no value", typeName, fieldName, key)
		}
		switch key {
		case "-", "skip":
			directives.Skip = true
		case "iterable":
			directives.Iterable = true
		case "ignore_bound":
			directives.IgnoreBound = true
		case "if_empty":
			if value == "" {
				return schema.FieldDirectives{}, fmt.Errorf("gosource: type %s: field %s: if_empty requires fallback text", typeName, fieldName)
			}
			directives.IfEmpty = value
		case "":
			// Tolerate a trailing comma.
		default:
			return schema.FieldDirectives{}, fmt.Errorf("gosource: type %s: field %s: unknown tag option %q", typeName, fieldName, key)
		}
	}
	return directives, nil
}
