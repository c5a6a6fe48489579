package io

import (
	"sync"
)

// Change is a single memory change notification.
type Change struct {
	Offset uint32 // Absolute address of the first byte changed.
	Length int    // Number of bytes changed.
}

// Watch queues memory change notifications until they are collected.
// It is safe for concurrent use, as the engine may notify from its
// worker goroutine.
type Watch struct {
	mu      sync.Mutex
	changes []Change
}

// MemoryChanged queues a change.
func (wc *Watch) MemoryChanged(offset uint32, length int) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	wc.changes = append(wc.changes, Change{Offset: offset, Length: length})
}

// Await removes and returns the oldest queued change.
func (wc *Watch) Await() (change Change, ok bool) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if len(wc.changes) > 0 {
		ok = true
		change = wc.changes[0]
		wc.changes = wc.changes[1:]
	}
	return
}

// Drain removes and returns all queued changes.
func (wc *Watch) Drain() (changes []Change) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	changes = wc.changes
	wc.changes = nil
	return
}

// Touches reports whether any queued change overlaps [offset, offset+length).
func (wc *Watch) Touches(offset uint32, length int) bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	end := uint64(offset) + uint64(length)
	for _, change := range wc.changes {
		cend := uint64(change.Offset) + uint64(change.Length)
		if uint64(change.Offset) < end && uint64(offset) < cend {
			return true
		}
	}
	return false
}

// Reset discards all queued changes.
func (wc *Watch) Reset() {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	wc.changes = nil
}
