package terms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/core/sorting"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Dependencies wires a Pipeline. Source, Normalizer and Logger are required;
// Sorter defaults to the partition sorter and Recorder to a no-op.
type Dependencies struct {
	Source     ports.TermSource
	Sink       ports.TermSink
	Sorter     ports.Sorter
	Normalizer ports.Normalizer
	Logger     ports.Logger
	Recorder   ports.Recorder
}

// Validate checks that the required collaborators are present.
func (d Dependencies) Validate() error {
	if d.Source == nil {
		return errors.New("term source is required")
	}
	if d.Normalizer == nil {
		return errors.New("normalizer is required")
	}
	if d.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Pipeline runs source -> normalize -> sort -> sink for one text at a time.
type Pipeline struct {
	source     ports.TermSource
	sink       ports.TermSink
	sorter     ports.Sorter
	normalizer ports.Normalizer
	logger     ports.Logger
	recorder   ports.Recorder
}

// NewPipeline creates a pipeline from its collaborators.
func NewPipeline(deps Dependencies) (*Pipeline, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if deps.Sorter == nil {
		deps.Sorter = sorting.NewPartitionSorter(sorting.WithLogger(deps.Logger))
	}
	if deps.Recorder == nil {
		deps.Recorder = ports.NopRecorder{}
	}

	return &Pipeline{
		source:     deps.Source,
		sink:       deps.Sink,
		sorter:     deps.Sorter,
		normalizer: deps.Normalizer,
		logger:     deps.Logger,
		recorder:   deps.Recorder,
	}, nil
}

// Extract fetches the key phrases of text and returns them normalized and
// sorted. On a source failure the returned list is empty and the error is
// the source's, unchanged.
func (p *Pipeline) Extract(ctx context.Context, text string) (*List, domain.Extraction, error) {
	list := NewList()

	select {
	case <-ctx.Done():
		p.logger.Error("Extraction cancelled", "error", ctx.Err())
		return list, domain.Extraction{}, ctx.Err()
	default:
	}

	start := time.Now()
	extraction, err := p.source.Fetch(ctx, text)
	p.recorder.ObserveStage(ports.StageFetch, time.Since(start))
	if err != nil {
		p.recorder.IncFailure(ports.StageFetch)
		p.logger.Error("Failed to fetch key phrases", "error", err)
		return list, domain.Extraction{}, err
	}
	p.logger.Debug("Fetched key phrases",
		"document_id", extraction.DocumentID,
		"phrases", len(extraction.Phrases),
	)

	if err := p.Prepare(list, extraction.Phrases); err != nil {
		return list, extraction, err
	}
	return list, extraction, nil
}

// Prepare populates, normalizes and sorts list with phrases.
func (p *Pipeline) Prepare(list *List, phrases []string) error {
	if err := list.Populate(phrases); err != nil {
		return err
	}

	start := time.Now()
	if err := list.Normalize(p.normalizer); err != nil {
		return err
	}
	p.recorder.ObserveStage(ports.StageNormalize, time.Since(start))

	start = time.Now()
	if err := list.Sort(p.sorter); err != nil {
		return err
	}
	p.recorder.ObserveStage(ports.StageSort, time.Since(start))
	p.recorder.AddTerms(list.Len())

	p.logger.Debug("Prepared terms", "terms", list.Len())
	return nil
}

// Persist hands terms to the sink under destination.
func (p *Pipeline) Persist(ctx context.Context, destination string, terms []string) error {
	if p.sink == nil {
		return errors.New("no term sink configured")
	}

	start := time.Now()
	err := p.sink.Write(ctx, destination, terms)
	p.recorder.ObserveStage(ports.StageWrite, time.Since(start))
	if err != nil {
		p.recorder.IncFailure(ports.StageWrite)
		p.logger.Error("Failed to write terms", "destination", destination, "error", err)
		return fmt.Errorf("write terms to %s: %w", destination, err)
	}

	p.logger.Info("Wrote terms", "destination", destination, "terms", len(terms))
	return nil
}

// Run extracts the terms of text and persists them under destination.
func (p *Pipeline) Run(ctx context.Context, text, destination string) (domain.Result, error) {
	list, extraction, err := p.Extract(ctx, text)
	if err != nil {
		return domain.Result{Terms: list.Terms(), Destination: destination}, err
	}

	sorted := list.Terms()
	result := domain.Result{
		DocumentID:  extraction.DocumentID,
		Terms:       sorted,
		Destination: destination,
		Details: map[string]interface{}{
			"phrases": len(extraction.Phrases),
		},
	}

	if err := p.Persist(ctx, destination, sorted); err != nil {
		return result, err
	}
	return result, nil
}
