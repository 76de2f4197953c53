package ports

// Sorter orders a sequence of terms. Implementations return the ordered
// sequence and must not modify the slice they are given.
type Sorter interface {
	Sort(terms []string) []string
}
