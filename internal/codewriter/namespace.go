package codewriter

import (
	"fmt"
	"go/token"
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS manages unique identifiers within one generated declaration.
type NS map[string]struct{}

// NewNS creates a namespace with the given names already reserved.
func NewNS(reserved ...string) NS {
	ns := make(NS, len(reserved))
	for _, name := range reserved {
		ns.Reserve(name)
	}
	return ns
}

// Reserve marks a name as used. It reports false when the name was
// already taken.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name returns a unique name in the namespace, appending a numbering
// suffix on conflicts. Go keywords are suffixed with an underscore so
// they remain legal identifiers.
//
// Panics if the name is empty.
func (ns NS) Name(name string) string {
	name = NormalizeName(name)
	if token.Lookup(name).IsKeyword() {
		name += "_"
	}
	if ns == nil {
		return name
	}
	for candidate := range DisambiguateName(name) {
		if ns.Reserve(candidate) {
			return candidate
		}
	}
	panic("unreachable")
}

// NormalizeName strips characters that cannot appear in a Go
// identifier, title-casing the chunk after each removed run.
func NormalizeName(name string) string {
	if name == "" {
		panic("codewriter: empty name")
	}

	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})
	if len(chunks) == 0 {
		return "_"
	}

	for i := 1; i < len(chunks); i++ {
		chunks[i] = cases.Title(language.English).String(chunks[i])
	}
	return strings.Join(chunks, "")
}

// DisambiguateName yields the name followed by numbered alternatives.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("codewriter: empty name")
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		// Separate the counter when the name already ends with a
		// digit: "rotate3_2" reads better than "rotate32".
		sep := ""
		if last := name[len(name)-1]; last >= '0' && last <= '9' {
			sep = "_"
		}

		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}
