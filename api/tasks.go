// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taskboard-foundation/taskboard/lib/cache"
	"github.com/taskboard-foundation/taskboard/lib/schema"
)

// taskIDs extracts the ids of a task list for per-item tagging.
func taskIDs(tasks []schema.Task) []int {
	ids := make([]int, len(tasks))
	for index, task := range tasks {
		ids[index] = task.ID
	}
	return ids
}

// MyTasks lists the tasks assigned to the authenticated user. Cached;
// provides the broad Tasks tag.
func (c *Client) MyTasks(ctx context.Context) ([]schema.Task, error) {
	return fetchCached(ctx, c, cache.KeyFor("tasks.mine", nil),
		func(ctx context.Context) ([]schema.Task, []cache.Tag, error) {
			var tasks []schema.Task
			if err := c.doJSON(ctx, http.MethodGet, "tasks/my-tasks", nil, nil, &tasks); err != nil {
				return nil, nil, fmt.Errorf("api: my tasks: %w", err)
			}
			return tasks, []cache.Tag{tasksTag()}, nil
		})
}

// TasksByProject lists the tasks of one project. Cached; provides one
// Tasks tag per returned task, so mutating a single task only marks
// lists that contained it. An empty result provides the broad Tasks
// tag so creating the project's first task still refetches it.
func (c *Client) TasksByProject(ctx context.Context, projectID int) ([]schema.Task, error) {
	if projectID == 0 {
		return nil, &ValidationError{Field: "projectId", Reason: "required to list project tasks"}
	}
	return fetchCached(ctx, c, cache.KeyFor("tasks.byProject", projectID),
		func(ctx context.Context) ([]schema.Task, []cache.Tag, error) {
			query := url.Values{"projectId": {strconv.Itoa(projectID)}}
			var tasks []schema.Task
			if err := c.doJSON(ctx, http.MethodGet, "tasks", query, nil, &tasks); err != nil {
				return nil, nil, fmt.Errorf("api: tasks for project %d: %w", projectID, err)
			}
			return tasks, taskListTags(taskIDs(tasks), tasksTag()), nil
		})
}

// TasksByUser lists the tasks authored by or assigned to one user.
// Cached; provides one Tasks tag per returned task. An empty result
// provides a Tasks tag keyed by the requested user id, so the entry
// remains individually invalidatable.
func (c *Client) TasksByUser(ctx context.Context, userID int) ([]schema.Task, error) {
	if userID == 0 {
		return nil, &ValidationError{Field: "userId", Reason: "required to list user tasks"}
	}
	return fetchCached(ctx, c, cache.KeyFor("tasks.byUser", userID),
		func(ctx context.Context) ([]schema.Task, []cache.Tag, error) {
			var tasks []schema.Task
			if err := c.doJSON(ctx, http.MethodGet, "tasks/user/"+strconv.Itoa(userID), nil, nil, &tasks); err != nil {
				return nil, nil, fmt.Errorf("api: tasks for user %d: %w", userID, err)
			}
			return tasks, taskListTags(taskIDs(tasks), taskTag(userID)), nil
		})
}

// TaskDetails returns one task with its denormalized relations
// (project, author, assignee, comments, attachments). Cached;
// provides the task's own tag. A missing task surfaces as a 404
// *Error and caches nothing.
func (c *Client) TaskDetails(ctx context.Context, taskID int) (*schema.Task, error) {
	if taskID == 0 {
		return nil, &ValidationError{Field: "id", Reason: "required to fetch task details"}
	}
	return fetchCached(ctx, c, cache.KeyFor("tasks.details", taskID),
		func(ctx context.Context) (*schema.Task, []cache.Tag, error) {
			var task schema.Task
			if err := c.doJSON(ctx, http.MethodGet, "tasks/"+strconv.Itoa(taskID), nil, nil, &task); err != nil {
				return nil, nil, fmt.Errorf("api: task %d: %w", taskID, err)
			}
			return &task, []cache.Tag{taskTag(taskID)}, nil
		})
}

// CreateTask creates a task. ProjectID and Title are required.
// Invalidates the broad Tasks tag — the new task's identity is
// unknown until the response arrives, so every cached task list must
// refetch.
func (c *Client) CreateTask(ctx context.Context, task schema.Task) (*schema.Task, error) {
	if task.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "required for task creation"}
	}
	if task.ProjectID == 0 {
		return nil, &ValidationError{Field: "projectId", Reason: "required for task creation"}
	}

	var created schema.Task
	if err := c.doJSON(ctx, http.MethodPost, "tasks", nil, task, &created); err != nil {
		return nil, fmt.Errorf("api: create task: %w", err)
	}

	c.cache.Invalidate(tasksTag())
	return &created, nil
}

// UpdateTask replaces a task's fields. The task must carry its ID —
// a zero ID fails with *ValidationError before any network activity.
// On success only the updated task's tag is invalidated, leaving
// unrelated cached tasks untouched.
func (c *Client) UpdateTask(ctx context.Context, task schema.Task) (*schema.Task, error) {
	if task.ID == 0 {
		return nil, &ValidationError{Field: "id", Reason: "required for task update"}
	}

	var updated schema.Task
	if err := c.doJSON(ctx, http.MethodPut, "tasks/"+strconv.Itoa(task.ID), nil, task, &updated); err != nil {
		return nil, fmt.Errorf("api: update task %d: %w", task.ID, err)
	}

	c.cache.Invalidate(taskTag(task.ID))
	return &updated, nil
}

// UpdateTaskStatus moves a task to a new workflow state. The status
// has already been through schema.ParseStatus when it originates from
// user input; the typed parameter keeps arbitrary strings out.
// Invalidates only the task's own tag on success.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int, status schema.Status) (*schema.Task, error) {
	if taskID == 0 {
		return nil, &ValidationError{Field: "taskId", Reason: "required for status update"}
	}
	if _, err := schema.ParseStatus(string(status)); err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}

	requestBody := struct {
		Status schema.Status `json:"status"`
	}{Status: status}

	var updated schema.Task
	if err := c.doJSON(ctx, http.MethodPatch, "tasks/"+strconv.Itoa(taskID)+"/status", nil, requestBody, &updated); err != nil {
		return nil, fmt.Errorf("api: update status of task %d: %w", taskID, err)
	}

	c.cache.Invalidate(taskTag(taskID))
	return &updated, nil
}

// DeleteTask removes a task. Invalidation is conditioned on the
// dispatch succeeding: a failed delete leaves the cache as it was,
// since the backend state did not change. The response body shape is
// irrelevant — only the status matters.
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	if taskID == 0 {
		return &ValidationError{Field: "taskId", Reason: "required for task deletion"}
	}

	if _, err := c.doRequest(ctx, http.MethodDelete, "tasks/"+strconv.Itoa(taskID), nil, nil); err != nil {
		return fmt.Errorf("api: delete task %d: %w", taskID, err)
	}

	c.cache.Invalidate(taskTag(taskID))
	return nil
}
