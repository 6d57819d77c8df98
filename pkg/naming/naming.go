// Package naming implements the canonical identifier transform shared by the
// generator, the backends, and the manifest tooling: structural CamelCase
// names become the hyphenated lowercase spelling CSS uses.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCSSIdentifier converts a structural name such as "BackgroundColor" into
// its canonical CSS spelling "background-color".
//
// Segments start at every uppercase rune, so consecutive uppercase runes each
// form their own segment ("URL" becomes "u-r-l") and digits remain inside the
// segment they follow ("Rotate3D" becomes "rotate3-d"). A leading "Moz" or
// "Webkit" segment marks a vendor prefix and produces a leading hyphen.
// Trailing underscores, used to dodge reserved words in source schemas, are
// trimmed before splitting. The transform is pure and order-preserving over
// the identifier's characters.
func ToCSSIdentifier(name string) string {
	name = strings.TrimRight(name, "_")
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name) + 2)

	first := true
	for _, segment := range splitCamelSegments(name) {
		if first {
			switch segment {
			case "Moz", "Webkit":
				first = false
			}
		}
		if !first {
			b.WriteByte('-')
		}
		first = false
		b.WriteString(strings.ToLower(segment))
	}
	return b.String()
}

// splitCamelSegments cuts name before every uppercase rune after the first
// position. "FooBar" yields ["Foo", "Bar"]; "Rotate3D" yields
// ["Rotate3", "D"].
func splitCamelSegments(name string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if i > start && unicode.IsUpper(r) {
			segments = append(segments, name[start:i])
			start = i
		}
		i += size
	}
	if start < len(name) {
		segments = append(segments, name[start:])
	}
	return segments
}
