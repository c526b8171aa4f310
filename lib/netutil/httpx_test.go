// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	var decoded struct {
		Name string `json:"name"`
	}
	err := DecodeResponse(strings.NewReader(`{"name":"launch"}`), &decoded)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.Name != "launch" {
		t.Errorf("Name = %q", decoded.Name)
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	var decoded map[string]any
	if err := DecodeResponse(strings.NewReader("not json"), &decoded); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestErrorBody(t *testing.T) {
	if got := ErrorBody(strings.NewReader("task not found")); got != "task not found" {
		t.Errorf("ErrorBody = %q", got)
	}
}
