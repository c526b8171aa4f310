// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskboard-foundation/taskboard/lib/schema"
)

const (
	columnWidthID     = 6
	columnWidthStatus = 18
	columnWidthTitle  = 48
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	idStyle     = lipgloss.NewStyle().Width(columnWidthID).Foreground(lipgloss.Color("244"))
	titleStyle  = lipgloss.NewStyle().Width(columnWidthTitle)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// statusColor maps a workflow state to a terminal color. Unknown
// states (a newer backend) render in the default foreground.
func statusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusToDo:
		return lipgloss.Color("110")
	case schema.StatusWorkInProgress:
		return lipgloss.Color("179")
	case schema.StatusUnderReview:
		return lipgloss.Color("176")
	case schema.StatusCompleted:
		return lipgloss.Color("114")
	}
	return lipgloss.Color("252")
}

// priorityColor maps urgency to a color, hottest first.
func priorityColor(priority schema.Priority) lipgloss.Color {
	switch priority {
	case schema.PriorityUrgent:
		return lipgloss.Color("196")
	case schema.PriorityHigh:
		return lipgloss.Color("208")
	case schema.PriorityMedium:
		return lipgloss.Color("179")
	case schema.PriorityLow:
		return lipgloss.Color("110")
	case schema.PriorityBacklog:
		return lipgloss.Color("244")
	}
	return lipgloss.Color("252")
}

// truncate shortens a string to width runes with an ellipsis.
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}

// renderTaskTable renders tasks one per row: id, status, priority,
// title, assignee.
func renderTaskTable(tasks []schema.Task) string {
	if len(tasks) == 0 {
		return faintStyle.Render("no tasks") + "\n"
	}

	var builder strings.Builder
	builder.WriteString(headerStyle.Render(
		fmt.Sprintf("%-*s %-*s %-8s %-*s %s",
			columnWidthID, "ID",
			columnWidthStatus, "STATUS",
			"PRIORITY",
			columnWidthTitle, "TITLE",
			"ASSIGNEE")))
	builder.WriteString("\n")

	for _, task := range tasks {
		statusText := lipgloss.NewStyle().
			Width(columnWidthStatus).
			Foreground(statusColor(task.Status)).
			Render(string(task.Status))
		priorityText := lipgloss.NewStyle().
			Width(9).
			Foreground(priorityColor(task.Priority)).
			Render(string(task.Priority))

		assignee := ""
		if task.Assignee != nil {
			assignee = task.Assignee.Username
		}

		builder.WriteString(idStyle.Render(fmt.Sprintf("%d", task.ID)))
		builder.WriteString(" ")
		builder.WriteString(statusText)
		builder.WriteString(" ")
		builder.WriteString(priorityText)
		builder.WriteString(titleStyle.Render(truncate(task.Title, columnWidthTitle)))
		builder.WriteString(" ")
		builder.WriteString(faintStyle.Render(assignee))
		builder.WriteString("\n")
	}
	return builder.String()
}

// renderTaskDetail renders one task with its relations.
func renderTaskDetail(task *schema.Task) string {
	var builder strings.Builder

	builder.WriteString(headerStyle.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("status:   %s\n",
		lipgloss.NewStyle().Foreground(statusColor(task.Status)).Render(string(task.Status))))
	builder.WriteString(fmt.Sprintf("priority: %s\n",
		lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Render(string(task.Priority))))
	if task.Project != nil {
		builder.WriteString(fmt.Sprintf("project:  %s (#%d)\n", task.Project.Name, task.Project.ID))
	}
	if task.Author != nil {
		builder.WriteString(fmt.Sprintf("author:   %s\n", task.Author.Username))
	}
	if task.Assignee != nil {
		builder.WriteString(fmt.Sprintf("assignee: %s\n", task.Assignee.Username))
	}
	if task.DueDate != "" {
		builder.WriteString(fmt.Sprintf("due:      %s\n", task.DueDate))
	}
	if task.Description != "" {
		builder.WriteString("\n" + task.Description + "\n")
	}
	if len(task.Comments) > 0 {
		builder.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Comments (%d)", len(task.Comments))) + "\n")
		for _, comment := range task.Comments {
			builder.WriteString(fmt.Sprintf("  %s %s\n",
				faintStyle.Render(fmt.Sprintf("[user %d]", comment.UserID)), comment.Text))
		}
	}
	if len(task.Attachments) > 0 {
		builder.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Attachments (%d)", len(task.Attachments))) + "\n")
		for _, attachment := range task.Attachments {
			builder.WriteString(fmt.Sprintf("  %s %s\n", attachment.FileName, faintStyle.Render(attachment.FileURL)))
		}
	}
	return builder.String()
}

// renderProjectTable renders projects one per row.
func renderProjectTable(projects []schema.Project) string {
	if len(projects) == 0 {
		return faintStyle.Render("no projects") + "\n"
	}

	var builder strings.Builder
	builder.WriteString(headerStyle.Render(
		fmt.Sprintf("%-*s %-*s %s", columnWidthID, "ID", columnWidthTitle, "NAME", "DATES")))
	builder.WriteString("\n")
	for _, project := range projects {
		dates := ""
		if project.StartDate != "" || project.EndDate != "" {
			dates = faintStyle.Render(project.StartDate + " → " + project.EndDate)
		}
		builder.WriteString(idStyle.Render(fmt.Sprintf("%d", project.ID)))
		builder.WriteString(" ")
		builder.WriteString(titleStyle.Render(truncate(project.Name, columnWidthTitle)))
		builder.WriteString(" ")
		builder.WriteString(dates)
		builder.WriteString("\n")
	}
	return builder.String()
}

// renderUserTable renders users one per row.
func renderUserTable(users []schema.User) string {
	if len(users) == 0 {
		return faintStyle.Render("no users") + "\n"
	}

	var builder strings.Builder
	builder.WriteString(headerStyle.Render(
		fmt.Sprintf("%-*s %-24s %s", columnWidthID, "ID", "USERNAME", "EMAIL")))
	builder.WriteString("\n")
	for _, user := range users {
		builder.WriteString(idStyle.Render(fmt.Sprintf("%d", user.UserID)))
		builder.WriteString(" ")
		builder.WriteString(fmt.Sprintf("%-24s", truncate(user.Username, 24)))
		builder.WriteString(faintStyle.Render(user.Email))
		builder.WriteString("\n")
	}
	return builder.String()
}

// renderTeamTable renders teams one per row.
func renderTeamTable(teams []schema.Team) string {
	if len(teams) == 0 {
		return faintStyle.Render("no teams") + "\n"
	}

	var builder strings.Builder
	builder.WriteString(headerStyle.Render(
		fmt.Sprintf("%-*s %s", columnWidthID, "ID", "NAME")))
	builder.WriteString("\n")
	for _, team := range teams {
		builder.WriteString(idStyle.Render(fmt.Sprintf("%d", team.TeamID)))
		builder.WriteString(" ")
		builder.WriteString(team.TeamName)
		builder.WriteString("\n")
	}
	return builder.String()
}
