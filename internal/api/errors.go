package api

import (
	"encoding/json"
	"fmt"

	"github.com/pawansuthar6813/url-shortener/internal/errs"
)

// Fallback messages used when the backend response carries none.
const (
	msgNetwork      = "Network error. Please check your connection."
	msgUnauthorized = "You are not authorized to perform this action."
	msgNotFound     = "Resource not found"
	msgConflict     = "Resource already exists"
	msgValidation   = "Please check your input and try again."
	msgServer       = "Something went wrong. Please try again later."
)

// Error is a normalized backend or transport failure. Message is always
// human-readable; Fields is set when the backend returned per-field
// validation messages.
type Error struct {
	Status  int // 0 when no response was received
	Message string
	Fields  map[string]string

	sentinel error
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets callers match with errors.Is against the errs sentinels.
func (e *Error) Unwrap() error { return e.sentinel }

func netError(cause error) *Error {
	return &Error{Message: msgNetwork, sentinel: fmt.Errorf("%w: %w", errs.ErrNetwork, cause)}
}

// normalizeError builds an Error from an HTTP status and the decoded
// response envelope. Message priority: body message, body error, fixed
// fallback per status class.
func normalizeError(status int, env envelope) *Error {
	e := &Error{Status: status, Message: env.Message}
	if e.Message == "" {
		e.Message = env.ErrorMsg
	}

	switch {
	case status == 401:
		e.sentinel = errs.ErrUnauthorized
		fallbackMsg(e, msgUnauthorized)
	case status == 403:
		e.sentinel = errs.ErrForbidden
		fallbackMsg(e, msgUnauthorized)
	case status == 404:
		e.sentinel = errs.ErrNotFound
		fallbackMsg(e, msgNotFound)
	case status == 409:
		e.sentinel = errs.ErrConflict
		fallbackMsg(e, msgConflict)
	case status == 400 || status == 422:
		e.sentinel = errs.ErrValidation
		fallbackMsg(e, msgValidation)
	default:
		e.sentinel = errs.ErrServer
		fallbackMsg(e, msgServer)
	}

	// Field-level validation errors come back under data as name->message.
	if len(env.Data) > 0 {
		var fields map[string]string
		if json.Unmarshal(env.Data, &fields) == nil && len(fields) > 0 {
			e.Fields = fields
		}
	}
	return e
}

func fallbackMsg(e *Error, msg string) {
	if e.Message == "" {
		e.Message = msg
	}
}
