package sink

import (
	"context"
	"io"
	"sync"

	"github.com/baditaflorin/go_key_terms/internal/pool"
)

// DefaultBufferSize is the initial capacity of pooled line buffers.
const DefaultBufferSize = 4 * 1024

var linePool = pool.NewBufferPool(DefaultBufferSize)

// writeLines writes each term followed by a newline to w in a single call.
func writeLines(w io.Writer, terms []string) error {
	buf := linePool.Get()
	defer linePool.Put(buf)

	*buf = pool.AppendLines(*buf, terms)
	_, err := w.Write(*buf)
	return err
}

// Writer emits terms onto an io.Writer, ignoring the destination. Writes
// are serialized so one Writer can be shared.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a sink over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits terms, one per line, in order.
func (s *Writer) Write(ctx context.Context, _ string, terms []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeLines(s.w, terms)
}
