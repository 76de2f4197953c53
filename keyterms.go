// keyterms.go
// Package keyterms extracts the key phrases of a block of text through a
// remote text analysis service, capitalizes their first letter, sorts them
// and writes them out one per line.
//
// The sort is a last-element-pivot partition sort over byte order. Sorting
// returns a new order which is then applied to the term list in place, so
// KeyTerms always reflects the sorted list after Extract.
package keyterms

import (
	"context"
	"path/filepath"
	"time"

	"github.com/baditaflorin/l"

	adapterlogger "github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/normalizer"
	"github.com/baditaflorin/go_key_terms/internal/adapters/sink"
	"github.com/baditaflorin/go_key_terms/internal/adapters/source/azure"
	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/core/terms"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Collaborator interfaces accepted by the options.
type (
	TermSource  = ports.TermSource
	TermSink    = ports.TermSink
	Sorter      = ports.Sorter
	Normalizer  = ports.Normalizer
	Recorder    = ports.Recorder
	Logger      = ports.Logger
	Extraction  = domain.Extraction
	Result      = domain.Result
	SourceError = domain.SourceError
)

// Errors returned by KeyTerms.
var (
	ErrMalformedResponse  = domain.ErrMalformedResponse
	ErrMissingAPIKey      = domain.ErrMissingAPIKey
	ErrInvalidDestination = domain.ErrInvalidDestination
)

// DefaultDestination is where Write puts the sorted terms.
const DefaultDestination = sink.DefaultFileName

// Config holds configuration options for KeyTerms.
type Config struct {
	DocumentID  int
	Endpoint    string
	Timeout     time.Duration
	MaxRetries  int
	Destination string

	Logger     ports.Logger
	Source     ports.TermSource
	Sink       ports.TermSink
	Sorter     ports.Sorter
	Normalizer ports.Normalizer
	Recorder   ports.Recorder
}

// Option defines a functional option for configuring KeyTerms.
type Option func(*Config)

// WithDocumentID sets the id sent with the text. It defaults to 1.
func WithDocumentID(id int) Option {
	return func(cfg *Config) {
		cfg.DocumentID = id
	}
}

// WithEndpoint overrides the keyPhrases endpoint.
func WithEndpoint(endpoint string) Option {
	return func(cfg *Config) {
		cfg.Endpoint = endpoint
	}
}

// WithTimeout bounds each remote call attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

// WithMaxRetries sets how often transient remote failures are retried.
func WithMaxRetries(n int) Option {
	return func(cfg *Config) {
		cfg.MaxRetries = n
	}
}

// WithDestination sets where Write puts the terms. With the default file
// sink the destination's directory becomes the sink's root, so WriteTo
// names files inside it.
func WithDestination(destination string) Option {
	return func(cfg *Config) {
		cfg.Destination = destination
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = adapterlogger.FromExisting(logger)
	}
}

// WithPortsLogger sets a logger implementing the module's Logger interface.
func WithPortsLogger(logger Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithSource replaces the remote service with another term source.
func WithSource(source TermSource) Option {
	return func(cfg *Config) {
		cfg.Source = source
	}
}

// WithSink replaces the file sink.
func WithSink(s TermSink) Option {
	return func(cfg *Config) {
		cfg.Sink = s
	}
}

// WithSorter replaces the partition sorter.
func WithSorter(s Sorter) Option {
	return func(cfg *Config) {
		cfg.Sorter = s
	}
}

// WithNormalizer replaces the first-letter capitalizer.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *Config) {
		cfg.Normalizer = n
	}
}

// WithRecorder receives pipeline measurements.
func WithRecorder(r Recorder) Option {
	return func(cfg *Config) {
		cfg.Recorder = r
	}
}

// KeyTerms extracts, sorts and writes the key terms of one text at a time.
type KeyTerms struct {
	pipeline    *terms.Pipeline
	logger      ports.Logger
	ownedLogger *adapterlogger.StdLogger
	destination string
	terms       []string
}

// New creates a KeyTerms for the given API key. The key may be empty only
// when WithSource supplies a term source.
func New(apiKey string, opts ...Option) (*KeyTerms, error) {
	az := azure.DefaultConfig()
	cfg := &Config{
		DocumentID:  az.DocumentID,
		Endpoint:    az.Endpoint,
		Timeout:     az.Timeout,
		MaxRetries:  az.MaxRetries,
		Destination: DefaultDestination,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.DocumentID == 0 {
		cfg.DocumentID = 1
	}

	kt := &KeyTerms{destination: cfg.Destination, terms: []string{}}

	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		kt.ownedLogger = logger
		cfg.Logger = logger
	}
	kt.logger = cfg.Logger

	if cfg.Source == nil {
		az.APIKey = apiKey
		az.DocumentID = cfg.DocumentID
		az.Endpoint = cfg.Endpoint
		az.Timeout = cfg.Timeout
		az.MaxRetries = cfg.MaxRetries
		client, err := azure.NewClient(az, cfg.Logger)
		if err != nil {
			kt.Close()
			return nil, err
		}
		cfg.Source = client
	}
	if cfg.Sink == nil {
		dir, name := filepath.Split(cfg.Destination)
		if name == "" {
			name = DefaultDestination
		}
		cfg.Sink = sink.NewFile(filepath.Clean(dir))
		kt.destination = name
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewCapitalizer()
	}

	pipeline, err := terms.NewPipeline(terms.Dependencies{
		Source:     cfg.Source,
		Sink:       cfg.Sink,
		Sorter:     cfg.Sorter,
		Normalizer: cfg.Normalizer,
		Logger:     cfg.Logger,
		Recorder:   cfg.Recorder,
	})
	if err != nil {
		kt.Close()
		return nil, err
	}
	kt.pipeline = pipeline

	return kt, nil
}

// Extract fetches the key phrases of text, capitalizes and sorts them, and
// keeps them as the current terms. On failure the current terms are emptied.
func (k *KeyTerms) Extract(ctx context.Context, text string) ([]string, error) {
	k.logger.Info("Extracting key terms", "text_length", len(text))

	list, _, err := k.pipeline.Extract(ctx, text)
	k.terms = list.Terms()
	if err != nil {
		return nil, err
	}

	k.logger.Info("Extracted key terms", "terms", len(k.terms))
	return k.KeyTerms(), nil
}

// KeyTerms returns a copy of the current terms.
func (k *KeyTerms) KeyTerms() []string {
	return append(make([]string, 0, len(k.terms)), k.terms...)
}

// Write persists the current terms to the configured destination.
func (k *KeyTerms) Write(ctx context.Context) error {
	return k.WriteTo(ctx, k.destination)
}

// WriteTo persists the current terms to destination. File destinations
// must stay inside the sink's directory; anything else fails with
// ErrInvalidDestination.
func (k *KeyTerms) WriteTo(ctx context.Context, destination string) error {
	return k.pipeline.Persist(ctx, destination, k.terms)
}

// Run extracts the terms of text and writes them to the configured destination.
func (k *KeyTerms) Run(ctx context.Context, text string) (Result, error) {
	result, err := k.pipeline.Run(ctx, text, k.destination)
	k.terms = result.Terms
	if k.terms == nil {
		k.terms = []string{}
	}
	return result, err
}

// Close releases the logger created by New, if any.
func (k *KeyTerms) Close() error {
	if k.ownedLogger != nil {
		return k.ownedLogger.Close()
	}
	return nil
}
