package normalizer

import (
	"fmt"

	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// NormalizerType names a normalization strategy.
type NormalizerType string

const (
	// CapitalizeType upper-cases the first ASCII letter of each term.
	CapitalizeType NormalizerType = "capitalize"
	// IdentityType leaves terms untouched.
	IdentityType NormalizerType = "identity"
)

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer returns the normalizer for the given type.
func (f *NormalizerFactory) CreateNormalizer(kind NormalizerType) (ports.Normalizer, error) {
	switch kind {
	case CapitalizeType, "":
		return NewCapitalizer(), nil
	case IdentityType:
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer type %q", kind)
	}
}
