// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Wrap them with fmt.Errorf("...: %w", err) and classify
// with errors.Is.
var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInactiveUser is returned when a non-activated account tries to mutate.
	ErrInactiveUser = errors.New("account is not activated")
)

// Authentication codes.
const (
	CodeNoToken      = "ERR_NO_TOKEN"
	CodeInvalidToken = "ERR_INVALID_TOKEN"
	CodeAuthExpired  = "ERR_AUTH_EXPIRED"
)

// ErrUnauthenticated matches every *AuthError.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authentication sentinels for errors.Is.
var (
	ErrNoToken      = &AuthError{Code: CodeNoToken}
	ErrInvalidToken = &AuthError{Code: CodeInvalidToken}
	ErrAuthExpired  = &AuthError{Code: CodeAuthExpired}
)

// AuthError is a failure to establish the viewer's identity.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return "unauthenticated: " + e.Code
}

// Is matches ErrUnauthenticated and any AuthError with the same code.
func (e *AuthError) Is(target error) bool {
	if target == ErrUnauthenticated {
		return true
	}
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

// Conflict codes are part of the public API; clients use them to drive
// idempotent toggles.
const (
	CodeAlreadyLiked    = "ERR_ALREADY_LIKED"
	CodeNotLiked        = "ERR_NOT_LIKED"
	CodeAlreadyFollowed = "ERR_ALREADY_FOLLOWED"
	CodeNotFollowed     = "ERR_NOT_FOLLOWED"
	CodeSelfFollow      = "ERR_SELF_FOLLOW"
)

// Conflict sentinels for errors.Is.
var (
	ErrAlreadyLiked    = &ConflictError{Code: CodeAlreadyLiked}
	ErrNotLiked        = &ConflictError{Code: CodeNotLiked}
	ErrAlreadyFollowed = &ConflictError{Code: CodeAlreadyFollowed}
	ErrNotFollowed     = &ConflictError{Code: CodeNotFollowed}
	ErrSelfFollow      = &ConflictError{Code: CodeSelfFollow}
)

// ValidationError names the request properties that failed validation.
type ValidationError struct {
	Fields []string
}

// NewValidationError returns a ValidationError for fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "invalid properties: " + strings.Join(e.Fields, ", ")
}

// ConflictError is a documented outcome of a toggle or follow request that
// would not change state.
type ConflictError struct {
	Code string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Code
}

// Is matches any ConflictError carrying the same code.
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	return ok && t.Code == e.Code
}

// NotFoundError identifies the missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFound builds a NotFoundError. id is formatted with %v.
func NewNotFound(kind string, id interface{}) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: fmt.Sprint(id)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Is reports true for ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
