package sorting

import "testing"

func TestIsBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "first position decides", a: "Apple", b: "Banana", want: true},
		{name: "later position decides", a: "Bandana", b: "Banana", want: false},
		{name: "prefix is before", a: "Kiwi", b: "Kiwifruit", want: true},
		{name: "longer is not before its prefix", a: "Kiwifruit", b: "Kiwi", want: false},
		{name: "equal terms", a: "Kiwi", b: "Kiwi", want: false},
		{name: "uppercase before lowercase", a: "Zebra", b: "apple", want: true},
		{name: "empty before anything", a: "", b: "a", want: true},
		{name: "both empty", a: "", b: "", want: false},
		{name: "digits before letters", a: "3D printing", b: "Apple", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBefore(tc.a, tc.b); got != tc.want {
				t.Errorf("IsBefore(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestIsBeforeMatchesStringOrder(t *testing.T) {
	words := []string{"", "a", "A", "ab", "Ab", "abc", "b", "Zz", "zz", "z", "éclair", "eclair", "~"}
	for _, a := range words {
		for _, b := range words {
			if got, want := IsBefore(a, b), a < b; got != want {
				t.Errorf("IsBefore(%q, %q) = %v, want %v", a, b, got, want)
			}
		}
	}
}
