package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_key_terms/internal/adapters/metrics"
	"github.com/baditaflorin/go_key_terms/internal/adapters/sink"
	"github.com/baditaflorin/go_key_terms/internal/app"
	"github.com/baditaflorin/go_key_terms/internal/config"
	"github.com/baditaflorin/go_key_terms/internal/core/domain"
	"github.com/baditaflorin/go_key_terms/internal/core/terms"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// DefaultRequestTimeout bounds one extraction including retries.
const DefaultRequestTimeout = 30 * time.Second

// ExtractRequest asks for the key terms of a text.
type ExtractRequest struct {
	Text string `json:"text"`
	// Destination, when set, persists the sorted terms there. It must be a
	// local path inside the configured output directory.
	Destination string `json:"destination,omitempty"`
}

// SortRequest asks for a term list to be normalized and sorted.
type SortRequest struct {
	Terms []string `json:"terms"`
}

// TermsResponse carries sorted terms.
type TermsResponse struct {
	RequestID   string   `json:"request_id"`
	DocumentID  string   `json:"document_id,omitempty"`
	Terms       []string `json:"terms"`
	Destination string   `json:"destination,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type server struct {
	logger    ports.Logger
	extractor *terms.Pipeline
	sorter    *terms.Pipeline
	sinks     *app.Sinks
	metrics   fasthttp.RequestHandler
	timeout   time.Duration
}

// newServer wires the pipelines. Remote extraction is disabled when no API
// key is configured; sorting always works.
func newServer(cfg config.Config, logger ports.Logger, registry *prometheus.Registry) (*server, error) {
	recorder, err := metrics.NewPrometheus(registry)
	if err != nil {
		return nil, err
	}

	sinks := app.BuildSink(cfg)

	s := &server{
		logger:  logger,
		sinks:   sinks,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		timeout: DefaultRequestTimeout,
	}

	s.sorter, err = app.BuildLinePipeline(cfg, sinks, logger, recorder, nil)
	if err != nil {
		sinks.Close()
		return nil, err
	}

	s.extractor, err = app.BuildRemotePipeline(cfg, sinks, logger, recorder)
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		logger.Warn("No API key configured, /extract is disabled")
		s.extractor = nil
	case err != nil:
		sinks.Close()
		return nil, err
	}

	return s, nil
}

func (s *server) Close() error {
	return s.sinks.Close()
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	requestID := uuid.NewString()
	ctx.Response.Header.Set("X-Request-ID", requestID)

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		s.handleHealth(ctx)
	case "/extract":
		s.handleExtract(ctx, requestID)
	case "/sort":
		s.handleSort(ctx, requestID)
	case "/metrics":
		s.metrics(ctx)
	default:
		writeJSONError(ctx, fasthttp.StatusNotFound, "Not found", requestID)
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSONResponse(ctx, fasthttp.StatusOK, map[string]interface{}{
		"status":  "ok",
		"extract": s.extractor != nil,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleExtract(ctx *fasthttp.RequestCtx, requestID string) {
	if !ctx.IsPost() {
		writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}
	if s.extractor == nil {
		writeJSONError(ctx, fasthttp.StatusServiceUnavailable, "Key phrase service is not configured", requestID)
		return
	}

	var req ExtractRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSONError(ctx, fasthttp.StatusBadRequest, "Invalid request: "+err.Error(), requestID)
		return
	}
	if req.Text == "" {
		writeJSONError(ctx, fasthttp.StatusBadRequest, "Text is required", requestID)
		return
	}
	if err := sink.ValidateDestination(req.Destination); err != nil {
		writeJSONError(ctx, fasthttp.StatusBadRequest, err.Error(), requestID)
		return
	}

	c, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	list, extraction, err := s.extractor.Extract(c, req.Text)
	if err != nil {
		writeJSONError(ctx, extractStatus(err), err.Error(), requestID)
		return
	}

	sorted := list.Terms()
	if req.Destination != "" {
		if err := s.extractor.Persist(c, req.Destination, sorted); err != nil {
			status := fasthttp.StatusInternalServerError
			if errors.Is(err, domain.ErrInvalidDestination) {
				status = fasthttp.StatusBadRequest
			}
			writeJSONError(ctx, status, err.Error(), requestID)
			return
		}
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, TermsResponse{
		RequestID:   requestID,
		DocumentID:  extraction.DocumentID,
		Terms:       sorted,
		Destination: req.Destination,
	})
}

func (s *server) handleSort(ctx *fasthttp.RequestCtx, requestID string) {
	if !ctx.IsPost() {
		writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req SortRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSONError(ctx, fasthttp.StatusBadRequest, "Invalid request: "+err.Error(), requestID)
		return
	}

	list := terms.NewList()
	if err := s.sorter.Prepare(list, req.Terms); err != nil {
		writeJSONError(ctx, fasthttp.StatusInternalServerError, err.Error(), requestID)
		return
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, TermsResponse{
		RequestID: requestID,
		Terms:     list.Terms(),
	})
}

// extractStatus maps pipeline errors to HTTP status codes.
func extractStatus(err error) int {
	var sourceErr *domain.SourceError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusGatewayTimeout
	case errors.Is(err, domain.ErrMalformedResponse):
		return fasthttp.StatusBadGateway
	case errors.As(err, &sourceErr):
		return fasthttp.StatusBadGateway
	default:
		return fasthttp.StatusInternalServerError
	}
}

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, status int, message, requestID string) {
	writeJSONResponse(ctx, status, ErrorResponse{
		Error:     message,
		RequestID: requestID,
	})
}
