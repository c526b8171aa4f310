// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache implements the tag-invalidated result cache behind the
// Taskboard API client's query endpoints.
//
// Each entry is keyed by endpoint-plus-arguments and remembers the
// tags the query provided. Mutations call Invalidate with the tags
// they affect; matching entries are marked stale and refetched on the
// next access, never eagerly. Concurrent fetches for the same key are
// deduplicated into one upstream call whose settled result every
// waiter observes. There is no TTL and no capacity bound — entries
// live until invalidated, removed, or the store is reset.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taskboard-foundation/taskboard/lib/clock"
)

// Result is what a fetch produces: the decoded value and the tags the
// endpoint provides for it.
type Result struct {
	Value any
	Tags  []Tag
}

// FetchFunc performs the upstream request for a cache miss.
type FetchFunc func(ctx context.Context) (Result, error)

// StoreConfig holds construction options for a Store.
type StoreConfig struct {
	// Clock stamps entries with their fetch time. If nil, clock.Real()
	// is used.
	Clock clock.Clock

	// Logger receives per-operation debug records. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Store is the cache. Safe for concurrent use.
type Store struct {
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.Mutex
	entries  map[Key]*entry
	inflight map[Key]*flight

	// generation increments on Reset. A fetch started before a Reset
	// must not repopulate the emptied store, so flights carry the
	// generation they were started in and results from an older
	// generation are discarded.
	generation uint64
}

// entry is one cached result.
type entry struct {
	value     any
	tags      []Tag
	stale     bool
	fetchedAt time.Time
}

// flight is one in-progress fetch. done is closed once result/err are
// set; all deduplicated waiters read them after that.
type flight struct {
	done       chan struct{}
	result     Result
	err        error
	generation uint64
}

// NewStore creates an empty Store.
func NewStore(config StoreConfig) *Store {
	c := config.Clock
	if c == nil {
		c = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		clock:    c,
		logger:   logger,
		entries:  make(map[Key]*entry),
		inflight: make(map[Key]*flight),
	}
}

// Fetch returns the cached value for key, or runs fetch to produce it.
//
// A fresh entry is returned without calling fetch. A stale or absent
// entry triggers one upstream call; callers arriving while that call
// is in flight wait for it instead of issuing their own, and all of
// them observe the same settled result, errors included.
//
// The upstream call runs detached from the initiating caller's
// cancellation: if ctx is canceled mid-flight the caller gets ctx.Err
// immediately, but the fetch completes and updates the shared cache
// for future consumers. Context values (deadlines aside) still flow
// through to the fetch.
//
// A failed fetch caches nothing. A previous stale value stays in
// place, still stale, so the next access retries.
func (s *Store) Fetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	s.mu.Lock()

	if existing, ok := s.entries[key]; ok && !existing.stale {
		s.mu.Unlock()
		s.logger.Debug("cache hit", "key", string(key))
		return existing.value, nil
	}

	if inflight, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		s.logger.Debug("cache join", "key", string(key))
		return s.wait(ctx, inflight)
	}

	current := &flight{
		done:       make(chan struct{}),
		generation: s.generation,
	}
	s.inflight[key] = current
	s.mu.Unlock()

	s.logger.Debug("cache fetch", "key", string(key))
	go s.run(context.WithoutCancel(ctx), key, current, fetch)

	return s.wait(ctx, current)
}

// run executes the upstream fetch and settles the flight.
func (s *Store) run(ctx context.Context, key Key, current *flight, fetch FetchFunc) {
	result, err := fetch(ctx)

	s.mu.Lock()
	current.result = result
	current.err = err

	// The flight may have been disowned by Reset; only the owning
	// generation publishes into the store.
	if current.generation == s.generation {
		delete(s.inflight, key)
		if err == nil {
			s.entries[key] = &entry{
				value:     result.Value,
				tags:      result.Tags,
				fetchedAt: s.clock.Now(),
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("cache fetch failed", "key", string(key), "error", err)
	}
	close(current.done)
}

// wait blocks until the flight settles or ctx is canceled.
func (s *Store) wait(ctx context.Context, current *flight) (any, error) {
	select {
	case <-current.done:
		return current.result.Value, current.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate marks stale every entry whose provided tags intersect the
// given tags. Stale entries are refetched on their next access.
func (s *Store) Invalidate(tags ...Tag) {
	if len(tags) == 0 {
		return
	}

	s.mu.Lock()
	marked := 0
	for _, cached := range s.entries {
		if cached.stale {
			continue
		}
		if intersects(tags, cached.tags) {
			cached.stale = true
			marked++
		}
	}
	s.mu.Unlock()

	s.logger.Debug("cache invalidate", "tags", formatTags(tags), "marked", marked)
}

// Stale reports whether key is present and marked stale. Absent keys
// report false.
func (s *Store) Stale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached, ok := s.entries[key]
	return ok && cached.stale
}

// Remove drops one entry. Used when a consumer releases the last
// reference to a query it no longer wants retained.
func (s *Store) Remove(key Key) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Reset drops every entry and disowns all in-flight fetches. Their
// results are discarded when they settle. Called on logout and forced
// session expiry — the analog of a full client reload.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[Key]*entry)
	s.inflight = make(map[Key]*flight)
	s.generation++
	s.mu.Unlock()
	s.logger.Debug("cache reset")
}

// Len returns the number of cached entries, stale included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// intersects reports whether any invalidated tag matches any provided
// tag. Tag sets are tiny (single digits for everything but large task
// lists), so the nested loop beats building set structures.
func intersects(invalidated, provided []Tag) bool {
	for _, inv := range invalidated {
		for _, prov := range provided {
			if inv.matches(prov) {
				return true
			}
		}
	}
	return false
}

func formatTags(tags []Tag) []string {
	formatted := make([]string, len(tags))
	for index, tag := range tags {
		formatted[index] = tag.String()
	}
	return formatted
}
