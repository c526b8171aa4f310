// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskboard-foundation/taskboard/lib/cache"
	"github.com/taskboard-foundation/taskboard/lib/clock"
	"github.com/taskboard-foundation/taskboard/lib/session"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the root of the Taskboard REST API
	// (e.g., "https://api.taskboard.example").
	BaseURL string

	// Session holds the bearer token and username. Required; the
	// client mutates it on login, registration, logout, and rejected
	// sessions.
	Session *session.Store

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used. Timeouts are the transport's responsibility — the
	// client applies none of its own.
	HTTPClient *http.Client

	// Logger receives the per-dispatch trace records. If nil,
	// slog.Default() is used.
	Logger *slog.Logger

	// Clock measures request durations and stamps cache entries. If
	// nil, clock.Real() is used.
	Clock clock.Clock

	// OnSessionExpired, if set, is invoked after a 401 response has
	// cleared the session and reset the cache. The UI layer uses it
	// to return to an unauthenticated view. Called at most once per
	// held session.
	OnSessionExpired func()
}

// Client is the typed Taskboard API client. Safe for concurrent use.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	logger           *slog.Logger
	session          *session.Store
	cache            *cache.Store
	clock            clock.Clock
	onSessionExpired func()
}

// NewClient creates a Client with an empty cache.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	// Validate the URL structure once; request URLs are built by
	// concatenation against the trimmed string form.
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL %q must be http or https", config.BaseURL)
	}
	if config.Session == nil {
		return nil, fmt.Errorf("api: Session is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		session:    config.Session,
		cache: cache.NewStore(cache.StoreConfig{
			Clock:  clk,
			Logger: logger,
		}),
		clock:            clk,
		onSessionExpired: config.OnSessionExpired,
	}, nil
}

// Session returns the session store the client was built with.
func (c *Client) Session() *session.Store {
	return c.session
}

// Logout clears the stored session and drops every cached result.
// A no-op when no one is logged in.
func (c *Client) Logout() error {
	cleared, err := c.session.Clear()
	if err != nil {
		return fmt.Errorf("api: logout: %w", err)
	}
	if cleared {
		c.cache.Reset()
		c.logger.Info("logged out")
	}
	return nil
}

// fetchCached runs a query through the client's tag cache: a fresh
// entry is returned without network activity, concurrent identical
// calls share one dispatch, and stale entries are refetched. The
// fetch closure returns the decoded value plus the tags it provides.
func fetchCached[T any](ctx context.Context, c *Client, key cache.Key, fetch func(ctx context.Context) (T, []cache.Tag, error)) (T, error) {
	value, err := c.cache.Fetch(ctx, key, func(ctx context.Context) (cache.Result, error) {
		typed, tags, err := fetch(ctx)
		if err != nil {
			return cache.Result{}, err
		}
		return cache.Result{Value: typed, Tags: tags}, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		// Only possible if two endpoints share a cache key, which the
		// endpoint-name prefix in KeyFor rules out.
		var zero T
		return zero, fmt.Errorf("api: cached value for %s has type %T", key, value)
	}
	return typed, nil
}
