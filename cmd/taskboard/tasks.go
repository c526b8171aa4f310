// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/taskboard-foundation/taskboard/lib/schema"
)

func runTasks(ctx context.Context, arguments []string) error {
	if len(arguments) < 1 {
		return fmt.Errorf("usage: taskboard tasks <list|show|create|update|status|delete> [flags]")
	}
	switch arguments[0] {
	case "list":
		return runTasksList(ctx, arguments[1:])
	case "show":
		return runTasksShow(ctx, arguments[1:])
	case "create":
		return runTasksCreate(ctx, arguments[1:])
	case "update":
		return runTasksUpdate(ctx, arguments[1:])
	case "status":
		return runTasksStatus(ctx, arguments[1:])
	case "delete":
		return runTasksDelete(ctx, arguments[1:])
	default:
		return fmt.Errorf("unknown tasks subcommand: %q", arguments[0])
	}
}

// runTasksList shows the caller's tasks, or one project's or user's
// tasks when --project/--user is given.
func runTasksList(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks list", pflag.ContinueOnError)
	projectID := flagSet.Int("project", 0, "list tasks of this project")
	userID := flagSet.Int("user", 0, "list tasks of this user")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	if *projectID != 0 && *userID != 0 {
		return fmt.Errorf("--project and --user are mutually exclusive")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var tasks []schema.Task
	switch {
	case *projectID != 0:
		tasks, err = client.TasksByProject(ctx, *projectID)
	case *userID != 0:
		tasks, err = client.TasksByUser(ctx, *userID)
	default:
		tasks, err = client.MyTasks(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Print(renderTaskTable(tasks))
	return nil
}

func runTasksShow(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks show", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	taskID, err := requireID(flagSet.Args(), "taskboard tasks show <id>")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	task, err := client.TaskDetails(ctx, taskID)
	if err != nil {
		return err
	}

	fmt.Print(renderTaskDetail(task))
	return nil
}

func runTasksCreate(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks create", pflag.ContinueOnError)
	projectID := flagSet.Int("project", 0, "project id (required)")
	description := flagSet.String("description", "", "task description")
	priority := flagSet.String("priority", "", "priority (Urgent, High, Medium, Low, Backlog)")
	dueDate := flagSet.String("due", "", "due date (ISO-8601)")
	points := flagSet.Int("points", 0, "story points")
	assignee := flagSet.Int("assignee", 0, "assigned user id")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 1 {
		return fmt.Errorf("usage: taskboard tasks create <title> --project <id> [flags]")
	}

	task := schema.Task{
		Title:          positional[0],
		Description:    *description,
		DueDate:        *dueDate,
		Points:         *points,
		ProjectID:      *projectID,
		AssignedUserID: *assignee,
	}
	if *priority != "" {
		parsed, err := schema.ParsePriority(*priority)
		if err != nil {
			return err
		}
		task.Priority = parsed
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.CreateTask(ctx, task)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created task #%d\n", created.ID)
	return nil
}

func runTasksUpdate(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks update", pflag.ContinueOnError)
	title := flagSet.String("title", "", "new title")
	description := flagSet.String("description", "", "new description")
	priority := flagSet.String("priority", "", "new priority")
	dueDate := flagSet.String("due", "", "new due date")
	points := flagSet.Int("points", 0, "new story points")
	assignee := flagSet.Int("assignee", 0, "new assigned user id")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	taskID, err := requireID(flagSet.Args(), "taskboard tasks update <id> [flags]")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	// Replacement semantics: fetch the current record, overlay the
	// given flags, send the whole task back.
	current, err := client.TaskDetails(ctx, taskID)
	if err != nil {
		return err
	}
	task := *current
	task.Project, task.Author, task.Assignee = nil, nil, nil
	task.Comments, task.Attachments = nil, nil
	if *title != "" {
		task.Title = *title
	}
	if *description != "" {
		task.Description = *description
	}
	if *priority != "" {
		parsed, err := schema.ParsePriority(*priority)
		if err != nil {
			return err
		}
		task.Priority = parsed
	}
	if *dueDate != "" {
		task.DueDate = *dueDate
	}
	if flagSet.Changed("points") {
		task.Points = *points
	}
	if flagSet.Changed("assignee") {
		task.AssignedUserID = *assignee
	}

	updated, err := client.UpdateTask(ctx, task)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Updated task #%d\n", updated.ID)
	return nil
}

func runTasksStatus(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks status", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 2 {
		return fmt.Errorf("usage: taskboard tasks status <id> <status>")
	}
	taskID, err := parseID(positional[0])
	if err != nil {
		return err
	}
	status, err := schema.ParseStatus(positional[1])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	updated, err := client.UpdateTaskStatus(ctx, taskID, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Task #%d is now %s\n", updated.ID, updated.Status)
	return nil
}

func runTasksDelete(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("tasks delete", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	taskID, err := requireID(flagSet.Args(), "taskboard tasks delete <id>")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Deleted task #%d\n", taskID)
	return nil
}

// requireID expects exactly one positional argument and parses it as
// a numeric id.
func requireID(positional []string, usage string) (int, error) {
	if len(positional) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return parseID(positional[0])
}

func parseID(raw string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
