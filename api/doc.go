// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides the typed client for the Taskboard REST API:
// authentication, projects, tasks, teams, users, and search.
//
// The client has three cooperating parts:
//
//   - The request dispatcher (dispatch.go) executes one HTTP attempt
//     per operation against a fixed base URL, attaching the session's
//     bearer token when one is held. A 401 response is intercepted
//     globally: the session is cleared, the cache is reset, and the
//     caller still receives the error. There are no retries.
//
//   - The endpoint methods (auth.go, users.go, projects.go, tasks.go,
//     teams.go, search.go) declare each remote operation with typed
//     arguments and results. Queries state the cache tags they
//     provide; mutations state the tags they invalidate.
//
//   - The tag-based cache (lib/cache) keyed by endpoint-plus-arguments
//     serves repeated queries, deduplicates concurrent identical
//     fetches, and refetches entries a mutation marked stale.
//
// Error kinds: transport failures surface as wrapped plain errors,
// HTTP failures as *Error carrying the status code, and client-side
// precondition failures as *ValidationError raised before any network
// activity. Use errors.As to distinguish them.
package api
