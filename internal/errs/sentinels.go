// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by the API client and the services built on it.
var (
	// ErrNetwork indicates the request never produced a response.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized indicates failed authentication (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks permission (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate resource (409), e.g. username or custom code taken.
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates the backend rejected the input (400/422).
	ErrValidation = errors.New("validation failed")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")

	// ErrNoSession indicates no stored credentials (login required).
	ErrNoSession = errors.New("no session (login required)")
)
