// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"strconv"

	"github.com/taskboard-foundation/taskboard/lib/cache"
)

// Tag entity families. Search results and auth responses are
// deliberately untagged: search is never cached, and login has no
// invalidation subscribers.
const (
	tagUsers    = "Users"
	tagProjects = "Projects"
	tagTasks    = "Tasks"
	tagTeams    = "Teams"
)

// usersTag covers every user-derived query.
func usersTag() cache.Tag { return cache.Tag{Type: tagUsers} }

// projectsTag covers every project-derived query.
func projectsTag() cache.Tag { return cache.Tag{Type: tagProjects} }

// tasksTag covers every task-derived query.
func tasksTag() cache.Tag { return cache.Tag{Type: tagTasks} }

// teamsTag covers team and project-team queries.
func teamsTag() cache.Tag { return cache.Tag{Type: tagTeams} }

// taskTag narrows to a single task so mutations of one task do not
// force refetches of lists that never contained it.
func taskTag(taskID int) cache.Tag {
	return cache.Tag{Type: tagTasks, ID: strconv.Itoa(taskID)}
}

// taskListTags derives the provided tags for a task list: one tag per
// returned task. An empty list provides the given fallback so the
// entry can still be invalidated and refetched when tasks are
// created.
func taskListTags(ids []int, fallback cache.Tag) []cache.Tag {
	if len(ids) == 0 {
		return []cache.Tag{fallback}
	}
	tags := make([]cache.Tag, len(ids))
	for index, id := range ids {
		tags[index] = taskTag(id)
	}
	return tags
}
