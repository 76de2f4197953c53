// Package app builds pipelines from configuration for the binaries.
package app

import (
	"errors"
	"io"
	"strconv"

	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/adapters/sink"
	"github.com/baditaflorin/go_key_terms/internal/adapters/source"
	"github.com/baditaflorin/go_key_terms/internal/adapters/source/azure"
	"github.com/baditaflorin/go_key_terms/internal/config"
	"github.com/baditaflorin/go_key_terms/internal/core/terms"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Sinks is the sink built from configuration plus the resources it holds.
type Sinks struct {
	ports.TermSink
	closers []io.Closer
}

// Close releases the sink's connections.
func (s *Sinks) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// BuildSink returns the file sink, fanned out to Redis when configured.
func BuildSink(cfg config.Config) *Sinks {
	file := sink.NewFile(cfg.Output.Dir)
	if cfg.Redis.Addr == "" {
		return &Sinks{TermSink: file}
	}

	redis := sink.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		sink.WithKeyPrefix(cfg.Redis.KeyPrefix),
		sink.WithTTL(cfg.Redis.TTL),
	)
	return &Sinks{
		TermSink: sink.NewMulti(file, redis),
		closers:  []io.Closer{redis},
	}
}

// BuildRemotePipeline wires the Azure source to s.
func BuildRemotePipeline(cfg config.Config, s ports.TermSink, logger ports.Logger, recorder ports.Recorder) (*terms.Pipeline, error) {
	client, err := azure.NewClient(cfg.AzureClient(), logger)
	if err != nil {
		return nil, err
	}
	return terms.NewPipeline(terms.Dependencies{
		Source:     client,
		Sink:       s,
		Normalizer: normalizer.NewCapitalizer(),
		Logger:     logger,
		Recorder:   recorder,
	})
}

// BuildLinePipeline wires a one-term-per-line source to s.
func BuildLinePipeline(cfg config.Config, s ports.TermSink, logger ports.Logger, recorder ports.Recorder, n ports.Normalizer) (*terms.Pipeline, error) {
	if n == nil {
		n = normalizer.NewCapitalizer()
	}
	return terms.NewPipeline(terms.Dependencies{
		Source:     source.NewLines(strconv.Itoa(cfg.Azure.DocumentID)),
		Sink:       s,
		Normalizer: n,
		Logger:     logger,
		Recorder:   recorder,
	})
}
