// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for credential material:
// the session bearer token and passwords read at the login prompt.
//
// Buffer allocates its backing memory outside the Go heap via
// mmap(MAP_ANONYMOUS), locks it into RAM with mlock so it cannot be
// swapped to disk, and excludes it from core dumps with
// madvise(MADV_DONTDUMP). Close zeros, unlocks, and unmaps the region.
// The garbage collector never sees the region, so it cannot copy or
// relocate the secret; once closed, the token is gone from memory.
package secret

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a credential in memory that is locked against swap,
// excluded from core dumps, and zeroed on close. Do not copy a Buffer
// after creation. Any access after Close panics.
type Buffer struct {
	mu     sync.Mutex
	region []byte
	closed bool
}

// NewFromBytes copies source into a protected region and zeros the
// source in place, so the caller's slice no longer holds the secret.
// Rejects empty input: an empty credential is always a caller bug.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: empty source")
	}

	region, err := unix.Mmap(-1, 0, len(source), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP): %w", err)
	}

	copy(region, source)
	Zero(source)

	return &Buffer{region: region}, nil
}

// NewFromString copies a string credential into a protected region.
// The source string itself cannot be zeroed (Go strings are immutable)
// and will be collected by the GC eventually; the buffer is the
// durable copy. Use NewFromBytes when the caller controls the bytes.
func NewFromString(source string) (*Buffer, error) {
	return NewFromBytes([]byte(source))
}

// Bytes returns the credential. The slice points directly into the
// mmap region — do not retain it beyond the Buffer's lifetime.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.region
}

// String returns the credential as a heap string. The copy is
// unprotected, so call this only at API boundaries that require a
// string (the Authorization header, JSON encoding) and let it go out
// of scope promptly.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return string(b.region)
}

// Len returns the credential length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return len(b.region)
}

// Close zeros the region, then unlocks and unmaps it. Idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.region)

	var firstError error
	if err := unix.Munlock(b.region); err != nil {
		firstError = fmt.Errorf("secret: munlock: %w", err)
	}
	if err := unix.Munmap(b.region); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap: %w", err)
	}
	b.region = nil
	return firstError
}

// Zero overwrites a byte slice with zeros. Use on transient heap
// copies of credential material (prompt input, file reads) once they
// have been moved into a Buffer.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
