package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse is returned when the analysis service answers with
	// a body that does not have the expected documents[].keyPhrases shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMissingAPIKey is returned when no subscription key was configured.
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrInvalidDestination is returned for a destination that is absolute or
	// leaves the sink's directory.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrListSealed is returned when a term list stage is run a second time.
	ErrListSealed = errors.New("term list stage already applied")
)

// SourceError describes a failed call to a term source.
type SourceError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Malformed wraps ErrMalformedResponse with a detail message.
func Malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
