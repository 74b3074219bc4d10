// Package common defines shared constants and sentinel errors used across
// the boiler-parts service layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed or missing request fields).
	ErrorValidation = errors.New("validation error")

	// Registration conflicts.
	ErrorUsernameTaken = errors.New("username already taken")
	ErrorEmailTaken    = errors.New("email already taken")

	// Session lifecycle errors (invalid cookie token or stale session).
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
)
