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

// Teams lists all teams. Cached; provides the broad Teams tag.
func (c *Client) Teams(ctx context.Context) ([]schema.Team, error) {
	return fetchCached(ctx, c, cache.KeyFor("teams.list", nil),
		func(ctx context.Context) ([]schema.Team, []cache.Tag, error) {
			var teams []schema.Team
			if err := c.doJSON(ctx, http.MethodGet, "teams", nil, nil, &teams); err != nil {
				return nil, nil, fmt.Errorf("api: teams: %w", err)
			}
			return teams, []cache.Tag{teamsTag()}, nil
		})
}
