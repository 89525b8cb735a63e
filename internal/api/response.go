// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/models"
)

// actionResult values that are not carried by a models error.
const (
	ResultSuccess           = "SUCCESS"
	ResultInvalidProperties = "ERR_INVALID_PROPERTIES"
	ResultNotFound          = "ERR_NOT_FOUND"
	ResultInsufficientPerms = "ERR_INSUFFICIENT_PERMS"
	ResultInactiveUser      = "ERR_INACTIVE_USER"
	ResultRateLimited       = "ERR_RATE_LIMITED"
	ResultInternalError     = "ERR_INTERNAL_ERROR"
)

// envelope is a response body. respondSuccess adds actionResult.
type envelope map[string]interface{}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write response body")
	}
}

// respondStatus writes a body holding only actionResult.
func respondStatus(w http.ResponseWriter, r *http.Request, status int, result string) {
	respondJSON(w, r, status, envelope{"actionResult": result})
}

// respondSuccess writes 200 with fields plus actionResult SUCCESS.
func respondSuccess(w http.ResponseWriter, r *http.Request, fields envelope) {
	if fields == nil {
		fields = envelope{}
	}
	fields["actionResult"] = ResultSuccess
	respondJSON(w, r, http.StatusOK, fields)
}

// respondError classifies err and writes the matching status and
// actionResult. Unclassified errors are logged and reported as
// ERR_INTERNAL_ERROR without their message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *models.ValidationError
		cerr *models.ConflictError
		aerr *models.AuthError
	)

	switch {
	case errors.As(err, &verr):
		fields := verr.Fields
		if fields == nil {
			fields = []string{}
		}
		respondJSON(w, r, http.StatusBadRequest, envelope{
			"actionResult":      ResultInvalidProperties,
			"invalidProperties": fields,
		})
	case errors.As(err, &cerr):
		respondStatus(w, r, http.StatusBadRequest, cerr.Code)
	case errors.As(err, &aerr):
		respondStatus(w, r, http.StatusUnauthorized, aerr.Code)
	case errors.Is(err, models.ErrUnauthenticated):
		respondStatus(w, r, http.StatusUnauthorized, models.CodeNoToken)
	case errors.Is(err, models.ErrForbidden):
		respondStatus(w, r, http.StatusForbidden, ResultInsufficientPerms)
	case errors.Is(err, models.ErrInactiveUser):
		respondStatus(w, r, http.StatusForbidden, ResultInactiveUser)
	case errors.Is(err, models.ErrNotFound):
		respondStatus(w, r, http.StatusNotFound, ResultNotFound)
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		// The client went away; nobody reads the body.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled by client")
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		respondStatus(w, r, http.StatusInternalServerError, ResultInternalError)
	}
}
