// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package cache

// Tag is a symbolic label attached to cached query results. Mutations
// declare tags they invalidate; every cached entry whose provided tags
// intersect the invalidated set is marked stale.
//
// A Tag with an empty ID is the broad form covering the whole entity
// type. Matching is symmetric on the broad form:
//
//   - invalidating {Tasks} hits every entry providing any Tasks tag;
//   - invalidating {Tasks 7} hits entries providing {Tasks 7} and
//     entries providing the broad {Tasks} tag, but not {Tasks 42}.
//
// List endpoints provide one fine-grained tag per returned item so
// that a single-item mutation does not force unrelated refetches;
// creation endpoints invalidate the broad tag because the new item's
// identity is unknown until the response arrives.
type Tag struct {
	// Type is the entity family ("Users", "Projects", "Tasks", "Teams").
	Type string

	// ID narrows the tag to one entity. Empty means the whole type.
	ID string
}

// matches reports whether an invalidated tag hits a provided tag.
func (invalidated Tag) matches(provided Tag) bool {
	if invalidated.Type != provided.Type {
		return false
	}
	return invalidated.ID == "" || provided.ID == "" || invalidated.ID == provided.ID
}

func (t Tag) String() string {
	if t.ID == "" {
		return t.Type
	}
	return t.Type + ":" + t.ID
}
