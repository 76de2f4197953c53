package ports

import (
	"context"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
)

// TermSource supplies the raw key phrases extracted from a block of text.
type TermSource interface {
	Fetch(ctx context.Context, text string) (domain.Extraction, error)
}
