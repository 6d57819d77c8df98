package generator

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// boundSet accumulates, across one generation pass, the type parameters that
// must carry the rendering capability because a value involving them is
// rendered directly. It is scoped strictly to one Compile call and consumed
// once by the driver; insertion order is preserved so emitted constraint
// lists stay deterministic.
type boundSet struct {
	params []string
	marked *linkedhashset.Set
}

func newBoundSet(params []string) *boundSet {
	return &boundSet{params: params, marked: linkedhashset.New()}
}

// Require marks every type parameter whose name occurs as an identifier in
// the field's declared type expression. A parameter used at any depth of a
// directly rendered type carries the bound; parameters that are only ever
// iterated, skipped, or explicitly exempted are never passed through here.
// Calling it twice for the same parameter is a no-op.
func (b *boundSet) Require(typeExpr string) {
	if len(b.params) == 0 {
		return
	}
	for _, ident := range identifiers(typeExpr) {
		for _, param := range b.params {
			if ident == param {
				b.marked.Add(param)
			}
		}
	}
}

// Requires reports whether the named parameter was marked.
func (b *boundSet) Requires(param string) bool {
	return b.marked.Contains(param)
}

// mentionsUnbound reports whether the type expression names any parameter
// that finished the pass without a bound. Such a type cannot statically
// promise the rendering capability, so its render sites become dynamic.
// Only meaningful after every field has been visited.
func (b *boundSet) mentionsUnbound(typeExpr string) bool {
	if len(b.params) == 0 {
		return false
	}
	for _, ident := range identifiers(typeExpr) {
		for _, param := range b.params {
			if ident == param && !b.marked.Contains(param) {
				return true
			}
		}
	}
	return false
}

// identifiers splits a type expression into its identifier runs, so "Px"
// never matches inside "PxLength" and punctuation like "[]*" separates
// tokens.
func identifiers(expr string) []string {
	var idents []string
	start := -1
	for i := 0; i < len(expr); i++ {
		if isIdentByte(expr[i], start >= 0 && i > start) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			idents = append(idents, expr[start:i])
			start = -1
		}
	}
	if start >= 0 {
		idents = append(idents, expr[start:])
	}
	return idents
}

func isIdentByte(c byte, interior bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return interior
	default:
		return false
	}
}
