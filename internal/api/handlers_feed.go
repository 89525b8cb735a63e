// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/models"
)

// Feed handles GET /api/feed.
//
// @Summary Get the viewer's feed
// @Description Anonymous viewers and viewers who follow nobody get the global feed. Once the personalized tier runs dry the fallback tier is served and feedFallback is true.
// @Tags Feed
// @Produce json
// @Param feedPage query int false "Feed page (1-based)"
// @Param fallbackPage query int false "Fallback page (1-based)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	var invalid []string
	feedPage, err := pageParam(r, "feedPage")
	if err != nil {
		invalid = append(invalid, "feedPage")
	}
	// fallbackPage is range-checked by the assembler once the fallback tier
	// is read.
	fallbackPage, err := intParam(r, "fallbackPage", 1)
	if err != nil {
		invalid = append(invalid, "fallbackPage")
	}
	if len(invalid) > 0 {
		respondError(w, r, models.NewValidationError(invalid...))
		return
	}

	f, err := h.feed.GetFeed(r.Context(), auth.ViewerFromContext(r.Context()), feedPage, fallbackPage)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondSuccess(w, r, envelope{
		"feedData":         models.NewPostDTOs(f.Posts),
		"feedFallback":     f.FallbackActive,
		"recommendedUsers": models.NewProfileDTOs(f.Recommended),
	})
}

// Heartbeat handles GET /api/heartbeat. It fails with 500 when the
// database does not answer a ping.
//
// @Summary Service heartbeat
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /heartbeat [get]
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Ping(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"timestamp": h.now().Format(time.RFC3339)})
}

// NotFound is the catch-all for unknown API routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondStatus(w, r, http.StatusNotFound, ResultNotFound)
}
