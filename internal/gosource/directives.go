package gosource

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/goliatone/go-cssgen/pkg/schema"
)

// directivePrefix marks machine-readable lines in a type's doc comment,
// written like other Go tool directives: //cssgen:keyword none.
const directivePrefix = "//cssgen:"

// directiveSet is the union of type-level and variant-level directives a doc
// comment may carry. Contextual application decides which subset is legal.
type directiveSet struct {
	deriveDebug bool
	function    *schema.FunctionName
	comma       bool
	keyword     string
	dimension   bool
	aliases     []string
}

// parseDirectives reads cssgen directive lines from a doc comment. Unknown
// and duplicated directives are reported, never skipped.
func parseDirectives(typeName string, doc *ast.CommentGroup) (directiveSet, error) {
	var set directiveSet
	if doc == nil {
		return set, nil
	}

	seen := make(map[string]bool)
	for _, comment := range doc.List {
		line, ok := strings.CutPrefix(comment.Text, directivePrefix)
		if !ok {
			continue
		}
		name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		if seen[name] {
			return directiveSet{}, fmt.Errorf("gosource: type %s: duplicate directive %q", typeName, name)
		}
		seen[name] = true

		switch name {
		case "derive_debug":
			if err := noArgument(typeName, name, arg); err != nil {
				return directiveSet{}, err
			}
			set.deriveDebug = true
		case "comma":
			if err := noArgument(typeName, name, arg); err != nil {
				return directiveSet{}, err
			}
			set.comma = true
		case "dimension":
			if err := noArgument(typeName, name, arg); err != nil {
				return directiveSet{}, err
			}
			set.dimension = true
		case "keyword":
			if arg == "" {
				return directiveSet{}, fmt.Errorf("gosource: type %s: keyword requires the literal text", typeName)
			}
			set.keyword = arg
		case "function":
			if arg == "" {
				set.function = schema.InheritedFunctionName()
			} else {
				set.function = schema.ExplicitFunctionName(arg)
			}
		case "aliases":
			if arg == "" {
				return directiveSet{}, fmt.Errorf("gosource: type %s: aliases requires at least one spelling", typeName)
			}
			set.aliases = strings.Fields(arg)
		default:
			return directiveSet{}, fmt.Errorf("gosource: type %s: unknown directive %q", typeName, name)
		}
	}
	return set, nil
}

func noArgument(typeName, directive, arg string) error {
	if arg != "" {
		return fmt.Errorf("gosource: type %s: directive %q takes no argument", typeName, directive)
	}
	return nil
}

// hasDirective reports whether the doc comment carries any cssgen directive,
// which is what opts a type into extraction when no names are requested.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, comment := range doc.List {
		if strings.HasPrefix(comment.Text, directivePrefix) {
			return true
		}
	}
	return false
}
