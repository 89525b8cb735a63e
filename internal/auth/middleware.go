// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/models"
)

type contextKey string

// ClaimsContextKey holds the verified *Claims of a request.
const ClaimsContextKey contextKey = "claims"

// ErrorHandler writes the response for an authentication failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware attaches the viewer identity to requests.
type Middleware struct {
	jwtManager *JWTManager
	onError    ErrorHandler
}

// NewMiddleware creates the middleware. onError renders 401 responses; nil
// uses a plain-text body carrying the error code.
func NewMiddleware(jwtManager *JWTManager, onError ErrorHandler) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			code := models.CodeInvalidToken
			var ae *models.AuthError
			if errors.As(err, &ae) {
				code = ae.Code
			}
			http.Error(w, code, http.StatusUnauthorized)
		}
	}
	return &Middleware{jwtManager: jwtManager, onError: onError}
}

// Optional resolves the viewer when a valid token is present and otherwise
// serves the request anonymously.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claims(r)
		if err != nil {
			if !errors.Is(err, models.ErrNoToken) {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("ignoring unusable token on optional route")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// Required rejects requests without a valid token.
func (m *Middleware) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claims(r)
		if err != nil {
			m.onError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (m *Middleware) claims(r *http.Request) (*Claims, error) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, models.ErrNoToken
	}
	return m.jwtManager.ValidateToken(token)
}

// extractBearerToken strips a case-insensitive "Bearer " prefix. A header
// without the prefix is taken as the bare token.
func extractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithViewer(ctx, claims.UserName)
}

// GetClaims returns the verified claims of the request, or nil.
func GetClaims(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims) //nolint:errcheck // type assertion ok is intentionally discarded
	return claims
}

// ViewerFromContext returns the request's viewer, or nil when anonymous.
func ViewerFromContext(ctx context.Context) *models.Viewer {
	if claims := GetClaims(ctx); claims != nil {
		return models.NewViewer(claims.UserName)
	}
	return nil
}

// ContextWithViewer marks ctx as authenticated for username. Used by tests
// and internal callers that have already verified the identity.
func ContextWithViewer(ctx context.Context, username string) context.Context {
	return withClaims(ctx, &Claims{UserName: username, TokenType: TokenTypeAuth})
}
