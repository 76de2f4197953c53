package source

import (
	"bufio"
	"context"
	"strings"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
)

// ContextCheckFrequency defines how often to check for context cancellation.
const ContextCheckFrequency = 500 // lines

// MaxLineSize bounds a single term line.
const MaxLineSize = 64 * 1024

// Lines treats the text itself as a term list: one term per line. Trailing
// carriage returns are dropped and blank lines are skipped.
type Lines struct {
	DocumentID string
}

// NewLines creates a line-based source.
func NewLines(documentID string) *Lines {
	return &Lines{DocumentID: documentID}
}

// Fetch splits text into terms.
func (s *Lines) Fetch(ctx context.Context, text string) (domain.Extraction, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)

	phrases := []string{}
	lines := 0
	for scanner.Scan() {
		lines++
		if lines%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Extraction{}, err
			}
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return domain.Extraction{}, &domain.SourceError{Op: "read term lines", Err: err}
	}

	return domain.Extraction{DocumentID: s.DocumentID, Phrases: phrases}, nil
}
