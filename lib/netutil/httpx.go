// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response body helpers for the
// Taskboard API client.
//
// Every response body read goes through these helpers so that a
// misbehaving server cannot make the client allocate unbounded memory.
// The Taskboard API returns JSON documents; streaming or binary
// downloads are not part of its surface.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize bounds API response body reads: 32 MB. Legitimate
// responses (task lists, search results) are orders of magnitude
// smaller; the limit only exists to cap a pathological response.
const MaxResponseSize int64 = 32 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll on HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a response body (bounded) and JSON-decodes it
// into v. Replaces the io.ReadAll + json.Unmarshal pattern.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body for inclusion in a
// diagnostic message. Read errors are ignored — a partial or empty
// body is still useful in an error string.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
