// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Key identifies one cached result: an endpoint name plus a digest of
// its arguments. Two calls to the same endpoint with equal arguments
// share a Key and therefore share the cached entry and any in-flight
// fetch.
type Key string

// KeyFor derives the cache key for an endpoint invocation. The
// arguments are canonicalized through JSON encoding (Go's json package
// sorts map keys, and argument structs have a fixed field order), then
// hashed with BLAKE3. The endpoint name is prefixed into the hash
// input with a separator byte so "tasks" + args and "task" + s-args
// cannot collide, and kept readable in the Key for logging.
//
// Panics if arguments cannot be JSON-encoded — endpoint argument
// types are fixed at compile time, so that is a programming error,
// not an input error.
func KeyFor(endpoint string, arguments any) Key {
	encoded, err := json.Marshal(arguments)
	if err != nil {
		panic(fmt.Sprintf("cache: unencodable arguments for %q: %v", endpoint, err))
	}

	input := make([]byte, 0, len(endpoint)+1+len(encoded))
	input = append(input, endpoint...)
	input = append(input, 0)
	input = append(input, encoded...)

	digest := blake3.Sum256(input)
	return Key(endpoint + "@" + hex.EncodeToString(digest[:8]))
}
