// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/taskboard-foundation/taskboard/lib/schema"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	got := truncate("a very long task title indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q", got)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"", "abc", "0", "-3"} {
		if _, err := parseID(raw); err == nil {
			t.Fatalf("parseID(%q) accepted", raw)
		}
	}
}

func TestRenderTaskTable(t *testing.T) {
	if got := renderTaskTable(nil); !strings.Contains(got, "no tasks") {
		t.Fatalf("empty table = %q", got)
	}

	out := renderTaskTable([]schema.Task{
		{
			ID:       7,
			Title:    "Ship the roadmap",
			Status:   schema.StatusWorkInProgress,
			Priority: schema.PriorityHigh,
			Assignee: &schema.User{Username: "sam"},
		},
	})
	for _, want := range []string{"7", "Ship the roadmap", "Work In Progress", "High", "sam"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTaskDetail(t *testing.T) {
	out := renderTaskDetail(&schema.Task{
		ID:       3,
		Title:    "Write docs",
		Status:   schema.StatusToDo,
		Priority: schema.PriorityLow,
		Project:  &schema.Project{ID: 1, Name: "Core"},
		Comments: []schema.Comment{{ID: 1, Text: "looks good", UserID: 2}},
	})
	for _, want := range []string{"#3 Write docs", "Core", "looks good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}
