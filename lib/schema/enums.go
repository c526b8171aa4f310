// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
)

// Status is the workflow state of a task. The wire values contain
// spaces ("To Do", "Work In Progress") — use ParseStatus to convert
// user input rather than casting.
type Status string

const (
	StatusToDo           Status = "To Do"
	StatusWorkInProgress Status = "Work In Progress"
	StatusUnderReview    Status = "Under Review"
	StatusCompleted      Status = "Completed"
)

// Priority is the urgency ranking of a task.
type Priority string

const (
	PriorityUrgent  Priority = "Urgent"
	PriorityHigh    Priority = "High"
	PriorityMedium  Priority = "Medium"
	PriorityLow     Priority = "Low"
	PriorityBacklog Priority = "Backlog"
)

// UnknownValueError reports a string that is not a member of a closed
// enum. Callers can use errors.As to distinguish it from transport
// failures:
//
//	var unknownErr *schema.UnknownValueError
//	if errors.As(err, &unknownErr) { ... }
type UnknownValueError struct {
	// Kind is the enum name ("status" or "priority").
	Kind string
	// Value is the rejected input.
	Value string
	// Valid lists the accepted values, for error messages and CLI help.
	Valid []string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid: %v)", e.Kind, e.Value, e.Valid)
}

// StatusValues returns the accepted status wire strings in workflow
// order.
func StatusValues() []string {
	return []string{
		string(StatusToDo),
		string(StatusWorkInProgress),
		string(StatusUnderReview),
		string(StatusCompleted),
	}
}

// PriorityValues returns the accepted priority wire strings from most
// to least urgent.
func PriorityValues() []string {
	return []string{
		string(PriorityUrgent),
		string(PriorityHigh),
		string(PriorityMedium),
		string(PriorityLow),
		string(PriorityBacklog),
	}
}

// ParseStatus validates a status string from user input. Returns an
// *UnknownValueError for anything outside the closed value set. The
// empty string is rejected too — callers that mean "no status" should
// not call Parse at all.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusToDo, StatusWorkInProgress, StatusUnderReview, StatusCompleted:
		return Status(value), nil
	}
	return "", &UnknownValueError{Kind: "status", Value: value, Valid: StatusValues()}
}

// ParsePriority validates a priority string from user input. Returns
// an *UnknownValueError for anything outside the closed value set.
func ParsePriority(value string) (Priority, error) {
	switch Priority(value) {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityBacklog:
		return Priority(value), nil
	}
	return "", &UnknownValueError{Kind: "priority", Value: value, Valid: PriorityValues()}
}
