// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/taskboard-foundation/taskboard/lib/schema"
)

// Search runs a cross-entity search over tasks, projects, and users.
// Results are never cached: query strings are high-cardinality and a
// stale hit is worse than a round trip, so every call dispatches.
func (c *Client) Search(ctx context.Context, query string) (*schema.SearchResults, error) {
	if query == "" {
		return nil, &ValidationError{Field: "query", Reason: "search query must not be empty"}
	}

	var results schema.SearchResults
	if err := c.doJSON(ctx, http.MethodGet, "search", url.Values{"query": {query}}, nil, &results); err != nil {
		return nil, fmt.Errorf("api: search %q: %w", query, err)
	}
	return &results, nil
}
