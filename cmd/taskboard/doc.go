// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Command taskboard is the command-line client for a Taskboard
// backend. It authenticates once (taskboard login), saves the session
// to a well-known file, and then exposes the project and task
// operations as subcommands that reuse the saved session.
package main
