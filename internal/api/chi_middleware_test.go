// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/murmur/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method string) int {
	req := httptest.NewRequest(method, "/api/posts", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitSeparatesReadsAndWrites(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitReads = 2
	cfg.RateLimitWrites = 1
	cfg.RateLimitWindow = time.Minute
	h := NewChiMiddleware(cfg).RateLimit()(okHandler())

	if code := serve(h, http.MethodPost); code != http.StatusOK {
		t.Fatalf("first write = %d, want 200", code)
	}
	if code := serve(h, http.MethodDelete); code != http.StatusTooManyRequests {
		t.Fatalf("second write = %d, want 429", code)
	}

	// The write budget is spent but reads have their own.
	for i := 0; i < 2; i++ {
		if code := serve(h, http.MethodGet); code != http.StatusOK {
			t.Fatalf("read %d = %d, want 200", i+1, code)
		}
	}
	if code := serve(h, http.MethodGet); code != http.StatusTooManyRequests {
		t.Fatalf("third read = %d, want 429", code)
	}
}

func TestRateLimitBody(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitWrites = 1
	h := NewChiMiddleware(cfg).RateLimit()(okHandler())
	serve(h, http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Body.String(); got != `{"actionResult":"ERR_RATE_LIMITED"}`+"\n" {
		t.Errorf("body = %q", got)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitWrites = 1
	cfg.RateLimitDisabled = true
	h := NewChiMiddleware(cfg).RateLimit()(okHandler())

	for i := 0; i < 5; i++ {
		if code := serve(h, http.MethodPost); code != http.StatusOK {
			t.Fatalf("write %d = %d, want 200", i+1, code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://murmur.example"}
	h := NewChiMiddleware(cfg).CORS()(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "https://murmur.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://murmur.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin for unknown origin = %q, want empty", got)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(&config.SecurityConfig{
		RateLimitReads:  50,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"https://a.example"},
	})
	if cfg.RateLimitReads != 50 || cfg.RateLimitWrites != 25 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("limits = %d/%d/%v", cfg.RateLimitReads, cfg.RateLimitWrites, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}

	if got := ChiMiddlewareConfigFrom(nil); got.RateLimitReads != 100 {
		t.Errorf("nil security config reads = %d, want 100", got.RateLimitReads)
	}
}
