package naming

import "testing"

func TestToCSSIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Normal", "normal"},
		{"BackgroundColor", "background-color"},
		{"Px", "px"},
		{"Em", "em"},
		{"None", "none"},
		{"MozAppearance", "-moz-appearance"},
		{"WebkitGradient", "-webkit-gradient"},
		// Consecutive uppercase runes each start a segment.
		{"URL", "u-r-l"},
		// Digits stay inside the segment they follow.
		{"Rotate3D", "rotate3-d"},
		{"Matrix3", "matrix3"},
		// Trailing underscores dodge reserved words in source schemas.
		{"Static_", "static"},
		{"Default__", "default"},
		// A lowercase name passes through unchanged.
		{"already", "already"},
		{"", ""},
		{"_", ""},
	}

	for _, tc := range cases {
		if got := ToCSSIdentifier(tc.in); got != tc.want {
			t.Errorf("ToCSSIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToCSSIdentifierIsPure(t *testing.T) {
	const name = "MozBoxSizing"
	first := ToCSSIdentifier(name)
	second := ToCSSIdentifier(name)
	if first != second {
		t.Fatalf("transform is not pure: %q then %q", first, second)
	}
	if first != "-moz-box-sizing" {
		t.Fatalf("ToCSSIdentifier(%q) = %q, want %q", name, first, "-moz-box-sizing")
	}
}
