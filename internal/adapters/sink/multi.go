package sink

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Multi writes the same terms to several sinks concurrently.
type Multi struct {
	sinks []ports.TermSink
}

// NewMulti creates a fan-out sink.
func NewMulti(sinks ...ports.TermSink) *Multi {
	return &Multi{sinks: sinks}
}

// Write calls every sink and returns the first error. The other sinks see
// a cancelled context once one of them fails.
func (m *Multi) Write(ctx context.Context, destination string, terms []string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range m.sinks {
		g.Go(func() error {
			return s.Write(gctx, destination, terms)
		})
	}
	return g.Wait()
}
