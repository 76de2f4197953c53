package main

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/config"
)

func newTestServer(t *testing.T, cfg config.Config) *server {
	t.Helper()
	s, err := newServer(cfg, logger.NewNopLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func serve(s *server, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	req.SetBodyString(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.handle(ctx)
	return ctx
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.Default())

	ctx := serve(s, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.NotEmpty(t, string(ctx.Response.Header.Peek("X-Request-ID")))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["extract"])
}

func TestSort(t *testing.T) {
	s := newTestServer(t, config.Default())

	tests := []struct {
		name string
		body string
		want []string
		code int
	}{
		{"mixed case", `{"terms":["banana","Apple","cherry"]}`, []string{"Apple", "Banana", "Cherry"}, fasthttp.StatusOK},
		{"duplicates kept", `{"terms":["Kiwi","kiwi","Kiwi"]}`, []string{"Kiwi", "Kiwi", "Kiwi"}, fasthttp.StatusOK},
		{"empty", `{"terms":[]}`, []string{}, fasthttp.StatusOK},
		{"invalid json", `{"terms":`, nil, fasthttp.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(s, fasthttp.MethodPost, "/sort", tt.body)
			require.Equal(t, tt.code, ctx.Response.StatusCode())
			if tt.code != fasthttp.StatusOK {
				return
			}

			var resp TermsResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tt.want, resp.Terms)
			assert.Equal(t, string(ctx.Response.Header.Peek("X-Request-ID")), resp.RequestID)
		})
	}
}

func TestMethodAndRouteErrors(t *testing.T) {
	s := newTestServer(t, config.Default())

	assert.Equal(t, fasthttp.StatusMethodNotAllowed, serve(s, fasthttp.MethodGet, "/sort", "").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusNotFound, serve(s, fasthttp.MethodGet, "/nope", "").Response.StatusCode())
}

func TestExtractWithoutAPIKey(t *testing.T) {
	s := newTestServer(t, config.Default())

	ctx := serve(s, fasthttp.MethodPost, "/extract", `{"text":"hello"}`)
	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
}

func startFakeService(t *testing.T, handler fasthttp.RequestHandler) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { srv.Shutdown() })

	return "http://" + ln.Addr().String() + "/text/analytics/v2.0/keyPhrases"
}

func TestExtract(t *testing.T) {
	endpoint := startFakeService(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"documents":[{"id":"1","keyPhrases":["zebra crossing","apple","Mango"]}],"errors":[]}`)
	})

	cfg := config.Default()
	cfg.Azure.APIKey = "test-key"
	cfg.Azure.Endpoint = endpoint
	cfg.Azure.MaxRetries = 0
	cfg.Output.Dir = t.TempDir()
	s := newTestServer(t, cfg)

	ctx := serve(s, fasthttp.MethodPost, "/extract", `{"text":"some text","destination":"out.txt"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp TermsResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "1", resp.DocumentID)
	assert.Equal(t, []string{"Apple", "Mango", "Zebra crossing"}, resp.Terms)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Apple\nMango\nZebra crossing\n", string(data))
}

func TestExtractRejectsEscapingDestination(t *testing.T) {
	var calls atomic.Int32
	endpoint := startFakeService(t, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"documents":[{"id":"1","keyPhrases":["apple"]}],"errors":[]}`)
	})

	root := t.TempDir()
	cfg := config.Default()
	cfg.Azure.APIKey = "test-key"
	cfg.Azure.Endpoint = endpoint
	cfg.Output.Dir = filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(cfg.Output.Dir, 0o755))
	s := newTestServer(t, cfg)

	victim := filepath.Join(root, "victim.txt")
	require.NoError(t, os.WriteFile(victim, []byte("keep\n"), 0o644))

	for _, dest := range []string{"../victim.txt", victim} {
		body, err := json.Marshal(ExtractRequest{Text: "some text", Destination: dest})
		require.NoError(t, err)

		ctx := serve(s, fasthttp.MethodPost, "/extract", string(body))
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode(), dest)
	}

	data, err := os.ReadFile(victim)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))
	assert.EqualValues(t, 0, calls.Load())
}

func TestExtractUpstreamFailure(t *testing.T) {
	endpoint := startFakeService(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"error":"denied"}`)
	})

	cfg := config.Default()
	cfg.Azure.APIKey = "bad-key"
	cfg.Azure.Endpoint = endpoint
	cfg.Output.Dir = t.TempDir()
	s := newTestServer(t, cfg)

	ctx := serve(s, fasthttp.MethodPost, "/extract", `{"text":"some text"}`)
	assert.Equal(t, fasthttp.StatusBadGateway, ctx.Response.StatusCode())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, config.Default())
	serve(s, fasthttp.MethodPost, "/sort", `{"terms":["b","a"]}`)

	ctx := serve(s, fasthttp.MethodGet, "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.True(t, strings.Contains(string(ctx.Response.Body()), "keyterms_terms_total 2"))
}
