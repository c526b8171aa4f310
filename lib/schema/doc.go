// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the record types exchanged with the Taskboard
// backend: users, projects, tasks, teams, and the auxiliary shapes
// (attachments, comments, search results) that ride along on reads.
//
// The backend is authoritative for all of these. The client never
// persists them beyond its volatile cache, and server-assigned fields
// (IDs, denormalized relations) are zero before creation.
//
// Status and Priority are closed string enums. Always go through
// ParseStatus/ParsePriority when converting user input — indexing into
// the value set directly would silently accept unknown strings.
package schema
