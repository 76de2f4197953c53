package ports

import "context"

// TermSink persists an ordered sequence of terms under a destination
// identifier (a file path, a key, ...), one term per entry, in order.
type TermSink interface {
	Write(ctx context.Context, destination string, terms []string) error
}
