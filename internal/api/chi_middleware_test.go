// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		disabled bool
		want     []int
	}{
		{"enforced", false, []int{200, 200, 429}},
		{"disabled", true, []int{200, 200, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultChiMiddlewareConfig()
			cfg.RateLimitRequests = 2
			cfg.RateLimitWindow = time.Minute
			cfg.RateLimitDisabled = tt.disabled
			h := NewChiMiddleware(cfg).RateLimit()(okHandler())

			for i, want := range tt.want {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				if rec.Code != want {
					t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, want)
				}
				if want == http.StatusTooManyRequests {
					expectError(t, rec, want, "TOO_MANY_REQUESTS")
				}
			}
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://reelmatch.example"}
	h := NewChiMiddleware(cfg).CORS()(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/movies", nil)
	req.Header.Set("Origin", "https://reelmatch.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://reelmatch.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestChiMiddlewareConfigFromServer(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromServer(config.ServerConfig{
		CORSOrigins:       []string{"*"},
		RateLimitReqs:     7,
		RateLimitWindow:   time.Second,
		RateLimitDisabled: true,
	})
	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != time.Second || !cfg.RateLimitDisabled || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	t.Parallel()

	h := APISecurityHeaders()(okHandler())

	plain := httptest.NewRecorder()
	h.ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/", nil))
	if plain.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	proxied := httptest.NewRecorder()
	h.ServeHTTP(proxied, req)
	if proxied.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}
