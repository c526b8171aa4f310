// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewFromBytes(t *testing.T) {
	source := []byte("tok_abc123")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "tok_abc123" {
		t.Errorf("String() = %q", got)
	}
	if !bytes.Equal(buffer.Bytes(), []byte("tok_abc123")) {
		t.Errorf("Bytes() = %q", buffer.Bytes())
	}
	if buffer.Len() != 10 {
		t.Errorf("Len() = %d, want 10", buffer.Len())
	}

	// The caller's slice must be wiped.
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d not zeroed", index)
		}
	}
}

func TestNewFromBytesEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromString("swordfish")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	accessors := map[string]func(*Buffer){
		"Bytes":  func(b *Buffer) { _ = b.Bytes() },
		"String": func(b *Buffer) { _ = b.String() },
		"Len":    func(b *Buffer) { _ = b.Len() },
	}
	for name, access := range accessors {
		t.Run(name, func(t *testing.T) {
			buffer, err := NewFromString("swordfish")
			if err != nil {
				t.Fatalf("NewFromString failed: %v", err)
			}
			buffer.Close()

			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic on a closed buffer", name)
				}
			}()
			access(buffer)
		})
	}
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3}
	Zero(data)
	if !bytes.Equal(data, []byte{0, 0, 0}) {
		t.Errorf("Zero left %v", data)
	}
}
