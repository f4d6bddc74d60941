package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cheetahbyte/keyforge/internal/config"
	"github.com/cheetahbyte/keyforge/internal/handlers"
	"github.com/cheetahbyte/keyforge/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, limit config.RateLimitConfig) *chi.Mux {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		Server:    config.ServerConfig{RequestTimeout: time.Second},
		Products:  map[string]string{"alpha": "alpha-secret"},
		Lookup:    config.LookupConfig{Secret: "lookup"},
		RateLimit: limit,
	}
	stack, err := services.InitServices(&cfg, log)
	require.NoError(t, err)

	r := chi.NewRouter()
	Register(r, handlers.New(stack, log), cfg, log)
	return r
}

func issue(r http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/serials", strings.NewReader(`{"product":"alpha","version":8}`))
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	assert.Equal(t, http.StatusOK, issue(r).Code)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `keyforge_serials_issued_total{product="alpha",version="8"} 1`)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2})

	assert.Equal(t, http.StatusOK, issue(r).Code)
	assert.Equal(t, http.StatusOK, issue(r).Code)

	rec := issue(r)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	health := httptest.NewRecorder()
	r.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code, "health checks are not limited")
}
