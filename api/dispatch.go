// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskboard-foundation/taskboard/lib/netutil"
)

// serverError is the JSON error body the backend sends with non-2xx
// statuses.
type serverError struct {
	Message string `json:"message"`
}

// dispatch performs one HTTP request and returns the raw response.
//
// The bearer token is attached when the session store holds one.
// Transport failures are returned as wrapped plain errors with no
// status. Exactly one attempt is made — a failure is terminal for
// this invocation. The caller owns closing the response body.
func (c *Client) dispatch(ctx context.Context, method, path string, query url.Values, requestBody any) (*http.Response, error) {
	requestURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body for %s %s: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: building request for %s %s: %w", method, path, err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.BearerToken(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	started := c.clock.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("dispatch failed",
			"method", method, "path", path,
			"elapsed", c.clock.Since(started), "error", err,
		)
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}

	c.logger.Debug("dispatch",
		"method", method, "path", path,
		"status", response.StatusCode, "elapsed", c.clock.Since(started),
	)
	return response, nil
}

// checkStatus turns a non-2xx response into a *Error, consuming the
// body for the error message. A 401 additionally clears the session
// and resets the cache before the error is handed back. Returns nil
// for 2xx with the body unread.
func (c *Client) checkStatus(response *http.Response) error {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	apiErr := &Error{
		StatusCode: response.StatusCode,
		Message:    errorMessage(netutil.ErrorBody(response.Body)),
	}

	if response.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}

	return apiErr
}

// doJSON dispatches a request and decodes the 2xx response body into
// into. This is the path every endpoint with a JSON response takes.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, requestBody, into any) error {
	response, err := c.dispatch(ctx, method, path, query, requestBody)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if err := c.checkStatus(response); err != nil {
		return err
	}
	if err := netutil.DecodeResponse(response.Body, into); err != nil {
		return fmt.Errorf("api: decoding response for %s %s: %w", method, path, err)
	}
	return nil
}

// doRequest dispatches a request and returns the raw 2xx body bytes.
// For endpoints whose response shape does not matter (delete).
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	response, err := c.dispatch(ctx, method, path, query, requestBody)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if err := c.checkStatus(response); err != nil {
		return nil, err
	}
	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response for %s %s: %w", method, path, err)
	}
	return responseBody, nil
}

// handleUnauthorized is the global 401 interception: the persisted
// token is invalid or expired, so fail closed — drop the session and
// every cached result derived from it. The original caller still
// receives the 401 error; this only performs the side effect.
func (c *Client) handleUnauthorized() {
	cleared, err := c.session.Clear()
	if err != nil {
		c.logger.Warn("clearing rejected session", "error", err)
	}
	if !cleared {
		// Another response already tore the session down.
		return
	}
	c.cache.Reset()
	c.logger.Warn("session rejected by server, cleared stored credentials")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// errorMessage extracts the server's error description from a non-2xx
// body: the "message" field when the body is the standard JSON error
// shape, the raw body otherwise.
func errorMessage(body string) string {
	var decoded serverError
	if err := json.Unmarshal([]byte(body), &decoded); err == nil && decoded.Message != "" {
		return decoded.Message
	}
	return strings.TrimSpace(body)
}
