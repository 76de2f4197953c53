package sorting

import (
	"slices"

	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// PartitionSorter orders terms with a last-element-pivot partition sort.
//
// Each step moves the elements before the pivot to the front of an
// accumulator, places ties directly ahead of the pivot and appends the rest,
// then recurses on both halves. Equal terms are all kept; their relative
// order is not preserved.
type PartitionSorter struct {
	less   Comparator
	logger ports.Logger
}

// Option configures a PartitionSorter.
type Option func(*PartitionSorter)

// WithComparator replaces IsBefore as the ordering predicate.
func WithComparator(less Comparator) Option {
	return func(s *PartitionSorter) {
		if less != nil {
			s.less = less
		}
	}
}

// WithLogger sets a logger for tracing sort calls.
func WithLogger(logger ports.Logger) Option {
	return func(s *PartitionSorter) {
		s.logger = logger
	}
}

// NewPartitionSorter creates a sorter that uses IsBefore unless configured otherwise.
func NewPartitionSorter(opts ...Option) *PartitionSorter {
	s := &PartitionSorter{less: IsBefore}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sortRun carries the per-call comparison counter so a sorter can be shared.
type sortRun struct {
	less        Comparator
	comparisons int
}

func (r *sortRun) before(a, b string) bool {
	r.comparisons++
	return r.less(a, b)
}

// Sort returns the terms in ascending order. The input slice is left untouched.
func (s *PartitionSorter) Sort(terms []string) []string {
	work := make([]string, len(terms))
	copy(work, terms)
	if len(work) < 2 {
		return work
	}

	run := &sortRun{less: s.less}
	sorted := run.partition(work)

	if s.logger != nil {
		s.logger.Debug("Sorted terms",
			"terms", len(sorted),
			"comparisons", run.comparisons,
		)
	}
	return sorted
}

func (r *sortRun) partition(sub []string) []string {
	if len(sub) < 2 {
		return sub
	}

	pivot := sub[len(sub)-1]
	acc := make([]string, 1, len(sub))
	acc[0] = pivot

	// smaller counts the elements at the front of acc; the first tie (or the
	// pivot itself) always sits right after them.
	smaller := 0
	pivotIndex := 0
	for _, x := range sub[:len(sub)-1] {
		switch {
		case r.before(x, pivot):
			acc = slices.Insert(acc, 0, x)
			smaller++
			pivotIndex++
		case !r.before(pivot, x):
			acc = slices.Insert(acc, smaller, x)
			pivotIndex++
		default:
			acc = append(acc, x)
		}
	}

	left := r.partition(acc[:pivotIndex])
	right := r.partition(acc[pivotIndex:])

	out := make([]string, 0, len(sub))
	out = append(out, left...)
	return append(out, right...)
}
