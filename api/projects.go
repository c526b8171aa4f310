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

// MyProjects lists the projects visible to the authenticated user.
// Cached; provides the Projects tag.
func (c *Client) MyProjects(ctx context.Context) ([]schema.Project, error) {
	return fetchCached(ctx, c, cache.KeyFor("projects.mine", nil),
		func(ctx context.Context) ([]schema.Project, []cache.Tag, error) {
			var projects []schema.Project
			if err := c.doJSON(ctx, http.MethodGet, "projects/my-projects", nil, nil, &projects); err != nil {
				return nil, nil, fmt.Errorf("api: my projects: %w", err)
			}
			return projects, []cache.Tag{projectsTag()}, nil
		})
}

// CreateProject creates a project and invalidates every cached
// project-derived query. The new project's server-assigned ID is in
// the returned record.
func (c *Client) CreateProject(ctx context.Context, project schema.Project) (*schema.Project, error) {
	if project.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required for project creation"}
	}

	var created schema.Project
	if err := c.doJSON(ctx, http.MethodPost, "projects", nil, project, &created); err != nil {
		return nil, fmt.Errorf("api: create project: %w", err)
	}

	c.cache.Invalidate(projectsTag())
	return &created, nil
}

// ProjectTeams lists the links between projects and teams. Cached;
// provides the Teams tag.
func (c *Client) ProjectTeams(ctx context.Context) ([]schema.ProjectTeam, error) {
	return fetchCached(ctx, c, cache.KeyFor("projects.teams", nil),
		func(ctx context.Context) ([]schema.ProjectTeam, []cache.Tag, error) {
			var links []schema.ProjectTeam
			if err := c.doJSON(ctx, http.MethodGet, "projects-teams", nil, nil, &links); err != nil {
				return nil, nil, fmt.Errorf("api: project teams: %w", err)
			}
			return links, []cache.Tag{teamsTag()}, nil
		})
}
