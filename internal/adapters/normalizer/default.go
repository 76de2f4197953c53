package normalizer

import (
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// asciiCaseOffset is the distance between an ASCII lowercase letter and its
// uppercase form.
const asciiCaseOffset = 'a' - 'A'

// Capitalizer upper-cases the first byte of a term when it is an ASCII
// lowercase letter. Every other term, including the empty one, is returned
// unchanged.
type Capitalizer struct{}

// NewCapitalizer creates the default term normalizer.
func NewCapitalizer() ports.Normalizer {
	return &Capitalizer{}
}

// Normalize capitalizes the leading ASCII letter of term.
func (n *Capitalizer) Normalize(term string) string {
	if len(term) == 0 {
		return term
	}
	first := term[0]
	if first < 'a' || first > 'z' {
		return term
	}
	return string(first-asciiCaseOffset) + term[1:]
}

// Identity returns every term unchanged.
type Identity struct{}

// Normalize returns term as is.
func (Identity) Normalize(term string) string {
	return term
}
