// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/murmur/internal/config"
	"github.com/tomtom215/murmur/internal/models"
)

// Token types carried in the tokenType claim.
const (
	TokenTypeAuth    = "AUTH"
	TokenTypeRefresh = "REFRESH"
)

// Claims represents JWT claims
type Claims struct {
	UserName  string `json:"userName"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret []byte
	issuer string
	maxAge time.Duration
	now    func() time.Time
}

// NewJWTManager creates a token manager from the security configuration.
// The secret is required.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	maxAge := cfg.TokenMaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: cfg.TokenIssuer,
		maxAge: maxAge,
		now:    time.Now,
	}, nil
}

// GenerateToken signs a token for username. The service itself never
// issues tokens to clients; this exists for tooling and tests.
func (m *JWTManager) GenerateToken(username, tokenType string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserName:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken verifies tokenString and returns its claims.
//
// Errors are models.ErrAuthExpired for tokens past their expiry or older
// than the maximum age, and models.ErrInvalidToken for everything else:
// bad signature, wrong algorithm, wrong issuer, a non-AUTH token type or a
// missing userName.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %v", models.ErrAuthExpired, err)
	}
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	if claims.TokenType != TokenTypeAuth || claims.UserName == "" {
		return nil, fmt.Errorf("%w: not an auth token", models.ErrInvalidToken)
	}
	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing iat", models.ErrInvalidToken)
	}
	if m.now().Sub(claims.IssuedAt.Time) > m.maxAge {
		return nil, fmt.Errorf("%w: issued more than %s ago", models.ErrAuthExpired, m.maxAge)
	}

	return claims, nil
}
