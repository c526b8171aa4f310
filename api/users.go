// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskboard-foundation/taskboard/lib/cache"
	"github.com/taskboard-foundation/taskboard/lib/schema"
)

// CurrentUser returns the record of the authenticated user. Cached;
// provides the Users tag.
func (c *Client) CurrentUser(ctx context.Context) (*schema.User, error) {
	return fetchCached(ctx, c, cache.KeyFor("users.current", nil),
		func(ctx context.Context) (*schema.User, []cache.Tag, error) {
			var user schema.User
			if err := c.doJSON(ctx, http.MethodGet, "users/get-user", nil, nil, &user); err != nil {
				return nil, nil, fmt.Errorf("api: current user: %w", err)
			}
			return &user, []cache.Tag{usersTag()}, nil
		})
}

// Users lists every user. Cached; provides the Users tag.
func (c *Client) Users(ctx context.Context) ([]schema.User, error) {
	return fetchCached(ctx, c, cache.KeyFor("users.list", nil),
		func(ctx context.Context) ([]schema.User, []cache.Tag, error) {
			var users []schema.User
			if err := c.doJSON(ctx, http.MethodGet, "users", nil, nil, &users); err != nil {
				return nil, nil, fmt.Errorf("api: users: %w", err)
			}
			return users, []cache.Tag{usersTag()}, nil
		})
}
