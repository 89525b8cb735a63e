// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func viewerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := ViewerFromContext(r.Context()); v != nil {
			_, _ = w.Write([]byte(v.Username))
			return
		}
		_, _ = w.Write([]byte("anonymous"))
	})
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"BEARER  abc ": "abc",
		"abc":          "abc",
		"":             "",
	}
	for in, want := range tests {
		if got := extractBearerToken(in); got != want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequired(t *testing.T) {
	manager := newTestManager(t)
	mw := NewMiddleware(manager, nil)
	handler := mw.Required(viewerEcho())

	token, err := manager.GenerateToken("alice", TokenTypeAuth)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"no token", "", http.StatusUnauthorized, "ERR_NO_TOKEN"},
		{"invalid token", "Bearer junk", http.StatusUnauthorized, "ERR_INVALID_TOKEN"},
		{"valid token", "Bearer " + token, http.StatusOK, "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	manager := newTestManager(t)
	handler := NewMiddleware(manager, nil).Optional(viewerEcho())

	token, err := manager.GenerateToken("bob", TokenTypeAuth)
	if err != nil {
		t.Fatal(err)
	}

	for header, want := range map[string]string{
		"":                "anonymous",
		"Bearer junk":     "anonymous",
		"Bearer " + token: "bob",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Errorf("header %q: %d %q, want 200 %q", header, rec.Code, rec.Body.String(), want)
		}
	}
}

func TestCustomErrorHandler(t *testing.T) {
	var got error
	mw := NewMiddleware(newTestManager(t), func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	mw.Required(viewerEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rec.Code != http.StatusTeapot || got == nil {
		t.Errorf("custom handler not used: code %d err %v", rec.Code, got)
	}
}
