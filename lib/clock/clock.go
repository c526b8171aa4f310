// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that reads the current time — the cache stamping fetch times,
// the dispatcher measuring request duration — accepts a Clock instead
// of calling the time package directly. Production wiring passes
// Real(); tests pass a Fake whose time moves only when Advance is
// called, so assertions about timestamps and elapsed durations are
// deterministic.
package clock

import "time"

// Clock abstracts the time operations the client needs. The surface
// is deliberately small: nothing in the client schedules timers or
// sleeps, it only observes the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time                  { return time.Now() }
func (realClock) Since(t time.Time) time.Duration { return time.Since(t) }
