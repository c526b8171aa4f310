// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client's authentication state: the bearer
// token and the display username issued by the login and registration
// endpoints.
//
// The state is an explicit object with a fixed lifecycle — Load at
// startup, Set on successful authentication, Clear on logout or when
// the server rejects the token — rather than ambient globals mutated
// from arbitrary call sites. The two slots persist across process
// restarts in a JSON file written with owner-only permissions; in
// memory the token lives in an mmap-backed secret.Buffer so it never
// sits on the Go heap at rest.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskboard-foundation/taskboard/lib/secret"
)

// fileState is the on-disk shape of the session file.
type fileState struct {
	// Token is the opaque bearer credential issued by the backend.
	Token string `json:"token"`

	// Username is the display name of the authenticated user, shown
	// by the CLI without a network round trip.
	Username string `json:"username"`
}

// Store holds the session slots and persists them to a single file.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	path     string
	token    *secret.Buffer
	username string
}

// NewStore creates a Store backed by the given file path. The file is
// not read until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// FilePath returns the session file location, for user-facing
// messages.
func (s *Store) FilePath() string {
	return s.path
}

// DefaultPath returns the well-known session file location:
// $TASKBOARD_SESSION_FILE if set, otherwise
// $XDG_CONFIG_HOME/taskboard/session.json, otherwise
// ~/.config/taskboard/session.json.
func DefaultPath() string {
	if envPath := os.Getenv("TASKBOARD_SESSION_FILE"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "taskboard-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "taskboard", "session.json")
}

// Load reads the session file. A missing file is not an error — it
// means no one is logged in. A present but unreadable or malformed
// file is an error, so a corrupted session surfaces instead of
// silently behaving like a logout.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session file %s: %w", s.path, err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	if state.Token == "" {
		return fmt.Errorf("session file %s has no token", s.path)
	}

	buffer, err := secret.NewFromString(state.Token)
	if err != nil {
		return fmt.Errorf("protecting session token: %w", err)
	}

	if s.token != nil {
		s.token.Close()
	}
	s.token = buffer
	s.username = state.Username
	return nil
}

// Set stores a new token and username and persists them. Called by
// the client after a successful login or registration. The previous
// token, if any, is zeroed.
func (s *Store) Set(token, username string) error {
	if token == "" {
		return fmt.Errorf("session: refusing to store an empty token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buffer, err := secret.NewFromString(token)
	if err != nil {
		return fmt.Errorf("protecting session token: %w", err)
	}

	data, err := json.MarshalIndent(fileState{Token: token, Username: username}, "", "  ")
	if err != nil {
		buffer.Close()
		return fmt.Errorf("encoding session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		buffer.Close()
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	// 0600: the file contains the bearer token.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		buffer.Close()
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}

	if s.token != nil {
		s.token.Close()
	}
	s.token = buffer
	s.username = username
	return nil
}

// BearerToken returns a heap copy of the token for the Authorization
// header. ok is false when no session is held.
func (s *Store) BearerToken() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return "", false
	}
	return s.token.String(), true
}

// Username returns the stored display username, or "" when no session
// is held.
func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Authenticated reports whether a token is currently held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

// Clear zeros the in-memory token and removes the session file.
// Returns true when a session was actually cleared, false when the
// store was already empty. Idempotent.
func (s *Store) Clear() (cleared bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return false, nil
	}

	s.token.Close()
	s.token = nil
	s.username = ""

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return true, fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return true, nil
}
