package source

import (
	"context"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
)

// Static returns the same phrases for every text.
type Static struct {
	DocumentID string
	Phrases    []string
}

// NewStatic creates a source that always answers with phrases.
func NewStatic(documentID string, phrases ...string) *Static {
	return &Static{DocumentID: documentID, Phrases: phrases}
}

// Fetch returns a copy of the configured phrases.
func (s *Static) Fetch(ctx context.Context, _ string) (domain.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Extraction{}, err
	}
	return domain.Extraction{
		DocumentID: s.DocumentID,
		Phrases:    append([]string{}, s.Phrases...),
	}, nil
}
