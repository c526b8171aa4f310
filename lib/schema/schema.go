// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// User is an account record. Password is write-only: it is sent on
// registration and login and never populated by any read endpoint.
// UserID is zero before the account exists server-side.
type User struct {
	UserID            int    `json:"userId,omitempty"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	TeamID            int    `json:"teamId,omitempty"`
}

// AuthResponse is returned by the login and create-account endpoints:
// an opaque bearer token plus the authenticated user record.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Project is a container for tasks. ID is assigned server-side and is
// zero before creation. Dates are ISO-8601 strings as sent by the
// backend; the client does not interpret them.
type Project struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Task is a unit of work within a project. ProjectID is required for
// creation; ID is required for update, delete, and status changes.
// The relation fields (Project, Author, Assignee, Comments,
// Attachments) are denormalized by the backend on reads and ignored
// on writes.
type Task struct {
	ID             int      `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Status         Status   `json:"status,omitempty"`
	Priority       Priority `json:"priority,omitempty"`
	Tags           string   `json:"tags,omitempty"`
	StartDate      string   `json:"startDate,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	Points         int      `json:"points,omitempty"`
	ProjectID      int      `json:"projectId"`
	AuthorUserID   int      `json:"authorUserId,omitempty"`
	AssignedUserID int      `json:"assignedUserId,omitempty"`

	Project     *Project     `json:"project,omitempty"`
	Author      *User        `json:"author,omitempty"`
	Assignee    *User        `json:"assignee,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Comment is a note attached to a task. Read-only on the client: the
// backend populates comments on task reads and there is no comment
// write endpoint in the API surface.
type Comment struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	TaskID int    `json:"taskId"`
	UserID int    `json:"userId"`
}

// Attachment is a file reference belonging to exactly one task.
type Attachment struct {
	ID           int    `json:"id"`
	FileURL      string `json:"fileURL"`
	FileName     string `json:"fileName"`
	TaskID       int    `json:"taskId"`
	UploadedByID int    `json:"uploadedById"`
}

// Team groups users and projects.
type Team struct {
	TeamID               int    `json:"teamId"`
	TeamName             string `json:"teamName"`
	ProductOwnerUserID   int    `json:"productOwnerUserId,omitempty"`
	ProjectManagerUserID int    `json:"projectManagerUserId,omitempty"`
}

// ProjectTeam links a team (and optionally a user) to a project. The
// client enforces no cardinality constraints on these links.
type ProjectTeam struct {
	ProjectID int `json:"projectId"`
	TeamID    int `json:"teamId"`
	UserID    int `json:"userId"`
}

// SearchResults is the aggregate returned by the free-text search
// endpoint. Read-only and never cached.
type SearchResults struct {
	Tasks    []Task    `json:"tasks,omitempty"`
	Projects []Project `json:"projects,omitempty"`
	Users    []User    `json:"users,omitempty"`
}
