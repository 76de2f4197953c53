// Package azure implements a TermSource backed by the Azure Text Analytics
// keyPhrases endpoint.
package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

const (
	// DefaultEndpoint is the keyPhrases endpoint of the eastus region.
	DefaultEndpoint = "https://eastus.api.cognitive.microsoft.com/text/analytics/v2.0/keyPhrases"

	// SubscriptionKeyHeader carries the API key.
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	opFetch = "fetch key phrases"

	maxErrorBody = 256
)

// Config configures the client.
type Config struct {
	Endpoint   string
	APIKey     string
	DocumentID int
	Language   string
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transient failure.
	MaxRetries int
	// RateLimit is in requests per second.
	RateLimit float64
	RateBurst int
	UserAgent string
}

// DefaultConfig returns a default configuration without an API key.
func DefaultConfig() Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		DocumentID: 1,
		Language:   "en",
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RateLimit:  10,
		RateBurst:  5,
		UserAgent:  "go_key_terms/1.0",
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return domain.ErrMissingAPIKey
	}
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if c.DocumentID < 1 {
		return errors.New("document id must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	if c.MaxRetries < 0 {
		return errors.New("max retries must not be negative")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("rate limit and burst must be greater than 0")
	}
	return nil
}

// Client calls the keyPhrases endpoint with rate limiting and retry.
type Client struct {
	config  Config
	http    *fasthttp.Client
	limiter *rate.Limiter
	logger  ports.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a new key phrase client.
func NewClient(config Config, logger ports.Logger, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Language == "" {
		config.Language = "en"
	}

	c := &Client{
		config: config,
		http: &fasthttp.Client{
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DocumentID returns the id sent with every request.
func (c *Client) DocumentID() string {
	return strconv.Itoa(c.config.DocumentID)
}

// Fetch sends text to the service and returns its key phrases in service order.
func (c *Client) Fetch(ctx context.Context, text string) (domain.Extraction, error) {
	payload, err := json.Marshal(Request{Documents: []RequestDocument{{
		Language: c.config.Language,
		ID:       c.DocumentID(),
		Text:     text,
	}}})
	if err != nil {
		return domain.Extraction{}, &domain.SourceError{Op: opFetch, Err: fmt.Errorf("encode request: %w", err)}
	}

	var lastErr *domain.SourceError
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return domain.Extraction{}, &domain.SourceError{Op: opFetch, Err: ctx.Err()}
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Extraction{}, &domain.SourceError{Op: opFetch, Err: fmt.Errorf("rate limiter: %w", err)}
		}

		status, body, err := c.doOnce(ctx, payload)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return domain.Extraction{}, &domain.SourceError{Op: opFetch, Err: ctx.Err()}
			}
			lastErr = &domain.SourceError{Op: opFetch, Err: err}
		case status == fasthttp.StatusOK:
			return c.decode(body)
		default:
			lastErr = &domain.SourceError{
				Op:         opFetch,
				StatusCode: status,
				Err:        fmt.Errorf("unexpected response: %s", truncate(body, maxErrorBody)),
			}
			if !retryableStatus(status) {
				return domain.Extraction{}, lastErr
			}
		}

		c.logger.Warn("Key phrase request failed",
			"attempt", attempt+1,
			"max_attempts", c.config.MaxRetries+1,
			"error", lastErr,
		)
	}

	return domain.Extraction{}, lastErr
}

type attemptResult struct {
	status int
	body   []byte
	err    error
}

// doOnce runs a single request. fasthttp has no context support, so the
// request runs in its own goroutine bounded by the attempt deadline and the
// caller stops waiting as soon as ctx is done.
func (c *Client) doOnce(ctx context.Context, payload []byte) (int, []byte, error) {
	deadline := time.Now().Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	done := make(chan attemptResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(c.config.Endpoint)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set(SubscriptionKeyHeader, c.config.APIKey)
		req.Header.SetUserAgent(c.config.UserAgent)
		req.SetBody(payload)

		if err := c.http.DoDeadline(req, resp, deadline); err != nil {
			done <- attemptResult{err: err}
			return
		}
		done <- attemptResult{
			status: resp.StatusCode(),
			body:   append([]byte(nil), resp.Body()...),
		}
	}()

	select {
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	case r := <-done:
		return r.status, r.body, r.err
	}
}

// decode turns a 200 body into an Extraction.
func (c *Client) decode(body []byte) (domain.Extraction, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Extraction{}, domain.Malformed("decode body: %v", err)
	}

	id := c.DocumentID()
	for _, docErr := range resp.Errors {
		if docErr.ID == id || len(resp.Documents) == 0 {
			return domain.Extraction{}, &domain.SourceError{
				Op:  "extract key phrases",
				Err: fmt.Errorf("document %s: %s", docErr.ID, docErr.Message),
			}
		}
	}

	if err := resp.Validate(); err != nil {
		return domain.Extraction{}, domain.Malformed("%v", err)
	}

	doc := resp.Documents[0]
	for _, d := range resp.Documents {
		if d.ID == id {
			doc = d
			break
		}
	}

	if doc.ID == "" {
		doc.ID = id
	}
	return domain.Extraction{DocumentID: doc.ID, Phrases: doc.KeyPhrases}, nil
}

func retryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
