// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/murmur/internal/config"
	"github.com/tomtom215/murmur/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	manager, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenMaxAge: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return manager
}

func signRaw(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{
			name:    "valid secret",
			cfg:     &config.SecurityConfig{JWTSecret: testSecret, TokenMaxAge: time.Hour},
			wantErr: false,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{JWTSecret: "", TokenMaxAge: time.Hour},
			wantErr: true,
		},
		{
			name:    "zero max age falls back to default",
			cfg:     &config.SecurityConfig{JWTSecret: testSecret},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.maxAge <= 0 {
				t.Errorf("maxAge = %v, want positive", manager.maxAge)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestManager(t)

	token, err := manager.GenerateToken("alice", TokenTypeAuth)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserName != "alice" || claims.TokenType != TokenTypeAuth {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenFailures(t *testing.T) {
	manager := newTestManager(t)
	now := time.Now()

	refresh, err := manager.GenerateToken("alice", TokenTypeRefresh)
	if err != nil {
		t.Fatal(err)
	}

	past := newTestManager(t)
	past.now = func() time.Time { return now.Add(-2 * time.Hour) }
	expired, err := past.GenerateToken("alice", TokenTypeAuth)
	if err != nil {
		t.Fatal(err)
	}

	tooOld := signRaw(t, &Claims{
		UserName:  "alice",
		TokenType: TokenTypeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-90 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}, jwt.SigningMethodHS256, []byte(testSecret))

	wrongKey := signRaw(t, &Claims{
		UserName:         "alice",
		TokenType:        TokenTypeAuth,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}, jwt.SigningMethodHS256, []byte("another_secret_that_is_long_enough_0000"))

	wrongAlg := signRaw(t, &Claims{
		UserName:         "alice",
		TokenType:        TokenTypeAuth,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}, jwt.SigningMethodHS512, []byte(testSecret))

	noUser := signRaw(t, &Claims{
		TokenType:        TokenTypeAuth,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}, jwt.SigningMethodHS256, []byte(testSecret))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not.a.token", models.ErrInvalidToken},
		{"refresh token", refresh, models.ErrInvalidToken},
		{"wrong key", wrongKey, models.ErrInvalidToken},
		{"wrong algorithm", wrongAlg, models.ErrInvalidToken},
		{"missing user", noUser, models.ErrInvalidToken},
		{"expired", expired, models.ErrAuthExpired},
		{"older than max age", tooOld, models.ErrAuthExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.ValidateToken(tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateToken() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, models.ErrUnauthenticated) {
				t.Errorf("error %v should match ErrUnauthenticated", err)
			}
		})
	}
}

func TestValidateTokenIssuer(t *testing.T) {
	manager, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenIssuer: "murmur-id", TokenMaxAge: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	good, err := manager.GenerateToken("bob", TokenTypeAuth)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.ValidateToken(good); err != nil {
		t.Errorf("matching issuer rejected: %v", err)
	}

	other := newTestManager(t)
	bad, err := other.GenerateToken("bob", TokenTypeAuth)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.ValidateToken(bad); !errors.Is(err, models.ErrInvalidToken) {
		t.Errorf("missing issuer: err = %v, want ErrInvalidToken", err)
	}
}
