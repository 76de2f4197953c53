package terms

import (
	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// List is the ordered sequence of terms owned by one pipeline run. It is
// filled once, normalized once and sorted once; each stage refuses to run
// a second time. A List is not safe for concurrent use.
type List struct {
	terms      []string
	populated  bool
	normalized bool
	sorted     bool
}

// NewList creates an empty list.
func NewList() *List {
	return &List{terms: []string{}}
}

// Populate fills the list with a copy of phrases, keeping duplicates.
func (l *List) Populate(phrases []string) error {
	if l.populated {
		return domain.ErrListSealed
	}
	l.terms = append(make([]string, 0, len(phrases)), phrases...)
	l.populated = true
	return nil
}

// Normalize rewrites every term in place with n, keeping order and length.
func (l *List) Normalize(n ports.Normalizer) error {
	if l.normalized {
		return domain.ErrListSealed
	}
	for i, term := range l.terms {
		l.terms[i] = n.Normalize(term)
	}
	l.normalized = true
	return nil
}

// Sort orders the list in place using the sequence returned by s.
func (l *List) Sort(s ports.Sorter) error {
	if l.sorted {
		return domain.ErrListSealed
	}
	copy(l.terms, s.Sort(l.terms))
	l.sorted = true
	return nil
}

// Len returns the number of terms.
func (l *List) Len() int {
	return len(l.terms)
}

// Terms returns a copy of the current terms in list order.
func (l *List) Terms() []string {
	return append(make([]string, 0, len(l.terms)), l.terms...)
}
