package ports

// Normalizer defines the interface for term normalization.
type Normalizer interface {
	Normalize(term string) string
}
