package sorting

// Comparator reports whether a is strictly before b. It must describe a
// strict weak ordering; two terms are tied when neither is before the other.
type Comparator func(a, b string) bool

// IsBefore is the lexicographic "comes before" predicate over byte codes.
// The first differing position decides; when one term is a prefix of the
// other, the shorter one is before. Equal terms are never before each other.
func IsBefore(a, b string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return len(a) < len(b)
}
