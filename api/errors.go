// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured error response from the backend. Callers can
// use errors.As to extract the status:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound { ... }
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server's error description, taken from the
	// "message" field of the JSON error body when present, otherwise
	// the raw body.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP
// status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized reports whether err is the rejected-session error.
// By the time a caller sees it, the client has already cleared the
// stored session.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// ValidationError is a client-side precondition failure. It is raised
// synchronously, before any network activity, when an operation is
// invoked without a field the backend requires.
type ValidationError struct {
	// Field names the missing or malformed argument.
	Field string

	// Reason says what about it was wrong.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("api: invalid %s: %s", e.Field, e.Reason)
}
