// Package common defines shared constants and sentinel errors used across
// the groupspend server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal            = errors.New("internal error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDoesNotExist          = errors.New("does not exist")
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// Credential errors. Bad login and invalid/expired tokens all collapse
	// into ErrInvalidCredentials at the service boundary so a caller cannot
	// tell which part of the credential was wrong.
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrCorruptCredential  = errors.New("corrupt credential record")

	// Token lifecycle errors (pre-collapse, used inside the auth package).
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrMalformedClaims = errors.New("malformed token claims")

	// Uniqueness violations.
	ErrUsernameExists = errors.New("username already exists")
	ErrAlreadyMember  = errors.New("user is already a group member")
)
