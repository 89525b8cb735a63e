// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/murmur/internal/models"
)

func TestRespondError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantResult string
	}{
		{"validation", models.NewValidationError("postTitle"), http.StatusBadRequest, ResultInvalidProperties},
		{"conflict", models.ErrAlreadyLiked, http.StatusBadRequest, models.CodeAlreadyLiked},
		{"wrapped conflict", fmt.Errorf("toggle: %w", models.ErrNotFollowed), http.StatusBadRequest, models.CodeNotFollowed},
		{"no token", models.ErrNoToken, http.StatusUnauthorized, models.CodeNoToken},
		{"expired", models.ErrAuthExpired, http.StatusUnauthorized, models.CodeAuthExpired},
		{"forbidden", fmt.Errorf("update post: %w", models.ErrForbidden), http.StatusForbidden, ResultInsufficientPerms},
		{"inactive", models.ErrInactiveUser, http.StatusForbidden, ResultInactiveUser},
		{"not found", models.NewNotFound("post", 7), http.StatusNotFound, ResultNotFound},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, ResultInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			respondError(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body %q: %v", rec.Body.String(), err)
			}
			if body["actionResult"] != tt.wantResult {
				t.Errorf("actionResult = %v, want %s", body["actionResult"], tt.wantResult)
			}
		})
	}
}

func TestRespondErrorInvalidProperties(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondError(rec, httptest.NewRequest(http.MethodPost, "/api/posts", nil),
		models.NewValidationError("postTitle", "postBody"))

	var body struct {
		ActionResult      string   `json:"actionResult"`
		InvalidProperties []string `json:"invalidProperties"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.InvalidProperties) != 2 || body.InvalidProperties[0] != "postTitle" {
		t.Errorf("invalidProperties = %v", body.InvalidProperties)
	}
}

func TestRespondErrorInternalHidesMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondError(rec, httptest.NewRequest(http.MethodGet, "/api/feed", nil), errors.New("password=hunter2"))
	if got := rec.Body.String(); strings.Contains(got, "hunter2") {
		t.Errorf("internal error leaked into body: %s", got)
	}
}

func TestRespondErrorCanceledRequestWritesNothing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	respondError(rec, req, fmt.Errorf("query: %w", context.Canceled))
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestRespondSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondSuccess(rec, httptest.NewRequest(http.MethodGet, "/", nil), envelope{"postId": 3})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["actionResult"] != ResultSuccess || body["postId"].(float64) != 3 {
		t.Errorf("body = %v", body)
	}
}

func TestPageParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"feedPage=", 1, false},
		{"feedPage=3", 3, false},
		{"feedPage=0", 0, true},
		{"feedPage=-2", 0, true},
		{"feedPage=two", 0, true},
		{"feedPage=1.5", 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/feed?"+tt.query, nil)
		got, err := pageParam(r, "feedPage")
		if (err != nil) != tt.wantErr {
			t.Errorf("pageParam(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if err != nil {
			var verr *models.ValidationError
			if !errors.As(err, &verr) || verr.Fields[0] != "feedPage" {
				t.Errorf("pageParam(%q) error = %v, want invalid feedPage", tt.query, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("pageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestIntParamLeavesRangeToCaller(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"fallbackPage=0", 0, false},
		{"fallbackPage=-4", -4, false},
		{"fallbackPage=x", 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/feed?"+tt.query, nil)
		got, err := intParam(r, "fallbackPage", 1)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("intParam(%q) = %d, %v, want %d, wantErr %v", tt.query, got, err, tt.want, tt.wantErr)
		}
	}
}
