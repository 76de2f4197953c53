package terms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

type fakeSource struct {
	extraction domain.Extraction
	err        error
	calls      int
}

func (f *fakeSource) Fetch(ctx context.Context, text string) (domain.Extraction, error) {
	f.calls++
	return f.extraction, f.err
}

type fakeSink struct {
	destination string
	terms       []string
	err         error
	calls       int
}

func (f *fakeSink) Write(ctx context.Context, destination string, terms []string) error {
	f.calls++
	f.destination = destination
	f.terms = append([]string(nil), terms...)
	return f.err
}

type countingRecorder struct {
	stages   map[string]int
	failures map[string]int
	terms    int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{stages: map[string]int{}, failures: map[string]int{}}
}

func (r *countingRecorder) ObserveStage(stage string, _ time.Duration) { r.stages[stage]++ }
func (r *countingRecorder) AddTerms(count int)                         { r.terms += count }
func (r *countingRecorder) IncFailure(stage string)                    { r.failures[stage]++ }

func newTestPipeline(t *testing.T, source ports.TermSource, sink ports.TermSink, recorder ports.Recorder) *Pipeline {
	t.Helper()
	p, err := NewPipeline(Dependencies{
		Source:     source,
		Sink:       sink,
		Normalizer: normalizer.NewCapitalizer(),
		Logger:     logger.NewNopLogger(),
		Recorder:   recorder,
	})
	require.NoError(t, err)
	return p
}

func TestNewPipelineRequiresCollaborators(t *testing.T) {
	_, err := NewPipeline(Dependencies{})
	assert.Error(t, err)

	_, err = NewPipeline(Dependencies{Source: &fakeSource{}, Logger: logger.NewNopLogger()})
	assert.Error(t, err)

	_, err = NewPipeline(Dependencies{Source: &fakeSource{}, Normalizer: normalizer.NewCapitalizer()})
	assert.Error(t, err)
}

func TestPipelineRun(t *testing.T) {
	source := &fakeSource{extraction: domain.Extraction{
		DocumentID: "1",
		Phrases:    []string{"banana", "Apple", "cherry"},
	}}
	sink := &fakeSink{}
	recorder := newCountingRecorder()
	p := newTestPipeline(t, source, sink, recorder)

	result, err := p.Run(context.Background(), "some text", "sortedTerms.txt")
	require.NoError(t, err)

	want := []string{"Apple", "Banana", "Cherry"}
	assert.Equal(t, want, result.Terms)
	assert.Equal(t, "1", result.DocumentID)
	assert.Equal(t, "sortedTerms.txt", result.Destination)
	assert.Equal(t, 3, result.Details["phrases"])

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, "sortedTerms.txt", sink.destination)
	assert.Equal(t, want, sink.terms)

	for _, stage := range []string{ports.StageFetch, ports.StageNormalize, ports.StageSort, ports.StageWrite} {
		assert.Equal(t, 1, recorder.stages[stage], stage)
	}
	assert.Equal(t, 3, recorder.terms)
	assert.Empty(t, recorder.failures)
}

func TestPipelineSourceFailure(t *testing.T) {
	sourceErr := &domain.SourceError{Op: "fetch key phrases", StatusCode: 503, Err: errors.New("unavailable")}
	source := &fakeSource{err: sourceErr}
	sink := &fakeSink{}
	recorder := newCountingRecorder()
	p := newTestPipeline(t, source, sink, recorder)

	result, err := p.Run(context.Background(), "text", "out.txt")
	require.Error(t, err)

	var target *domain.SourceError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 503, target.StatusCode)
	assert.Empty(t, result.Terms)
	assert.Equal(t, 0, sink.calls)
	assert.Equal(t, 1, recorder.failures[ports.StageFetch])
}

func TestPipelineMalformedResponse(t *testing.T) {
	source := &fakeSource{err: domain.Malformed("no documents")}
	p := newTestPipeline(t, source, &fakeSink{}, nil)

	list, _, err := p.Extract(context.Background(), "text")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, 0, list.Len())
}

func TestPipelineCancelledBeforeFetch(t *testing.T) {
	source := &fakeSource{}
	p := newTestPipeline(t, source, &fakeSink{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.Extract(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, source.calls)
}

func TestPipelineSinkFailure(t *testing.T) {
	source := &fakeSource{extraction: domain.Extraction{DocumentID: "1", Phrases: []string{"yak"}}}
	diskFull := errors.New("no space left on device")
	recorder := newCountingRecorder()
	p := newTestPipeline(t, source, &fakeSink{err: diskFull}, recorder)

	result, err := p.Run(context.Background(), "text", "out.txt")
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, []string{"Yak"}, result.Terms)
	assert.Equal(t, 1, recorder.failures[ports.StageWrite])
}

func TestPipelinePersistWithoutSink(t *testing.T) {
	p := newTestPipeline(t, &fakeSource{}, nil, nil)
	assert.Error(t, p.Persist(context.Background(), "out.txt", []string{"Apple"}))
}

func TestPipelineEmptyExtraction(t *testing.T) {
	source := &fakeSource{extraction: domain.Extraction{DocumentID: "1", Phrases: []string{}}}
	sink := &fakeSink{}
	p := newTestPipeline(t, source, sink, nil)

	result, err := p.Run(context.Background(), "text", "out.txt")
	require.NoError(t, err)
	assert.Empty(t, result.Terms)
	assert.Equal(t, 1, sink.calls)
}
