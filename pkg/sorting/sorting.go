// Package sorting exposes the term normalizer and partition sort used by
// keyterms for callers that already have their terms.
package sorting

import (
	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/core/sorting"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// TermSorter normalizes and sorts term lists.
type TermSorter struct {
	sorter     *sorting.PartitionSorter
	normalizer ports.Normalizer
}

// TermSorterOption defines a functional option for configuring TermSorter.
type TermSorterOption func(*termSorterConfig)

type termSorterConfig struct {
	Comparator sorting.Comparator
	Logger     ports.Logger
	Normalizer ports.Normalizer
}

// WithComparator replaces IsBefore as the ordering predicate.
func WithComparator(less func(a, b string) bool) TermSorterOption {
	return func(cfg *termSorterConfig) {
		cfg.Comparator = less
	}
}

// WithLogger sets a logger that traces each sort at debug level.
func WithLogger(l l.Logger) TermSorterOption {
	return func(cfg *termSorterConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithoutNormalization keeps terms exactly as given.
func WithoutNormalization() TermSorterOption {
	return func(cfg *termSorterConfig) {
		cfg.Normalizer = normalizer.Identity{}
	}
}

// New creates a TermSorter.
func New(opts ...TermSorterOption) *TermSorter {
	cfg := &termSorterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewCapitalizer()
	}

	sorterOpts := []sorting.Option{sorting.WithComparator(cfg.Comparator)}
	if cfg.Logger != nil {
		sorterOpts = append(sorterOpts, sorting.WithLogger(cfg.Logger))
	}

	return &TermSorter{
		sorter:     sorting.NewPartitionSorter(sorterOpts...),
		normalizer: cfg.Normalizer,
	}
}

// Sort returns the terms in order without touching the input.
func (s *TermSorter) Sort(terms []string) []string {
	return s.sorter.Sort(terms)
}

// SortInPlace orders terms in place.
func (s *TermSorter) SortInPlace(terms []string) {
	copy(terms, s.sorter.Sort(terms))
}

// NormalizeInPlace applies the normalizer to every term.
func (s *TermSorter) NormalizeInPlace(terms []string) {
	for i, term := range terms {
		terms[i] = s.normalizer.Normalize(term)
	}
}

// Prepare normalizes and sorts terms in place.
func (s *TermSorter) Prepare(terms []string) {
	s.NormalizeInPlace(terms)
	s.SortInPlace(terms)
}

var defaultSorter = New()

// IsBefore reports whether a sorts strictly before b.
func IsBefore(a, b string) bool {
	return sorting.IsBefore(a, b)
}

// Normalize capitalizes the leading ASCII letter of term.
func Normalize(term string) string {
	return defaultSorter.normalizer.Normalize(term)
}

// Sort returns terms in ascending byte order.
func Sort(terms []string) []string {
	return defaultSorter.Sort(terms)
}

// Prepare normalizes and sorts terms in place with the default settings.
func Prepare(terms []string) {
	defaultSorter.Prepare(terms)
}
