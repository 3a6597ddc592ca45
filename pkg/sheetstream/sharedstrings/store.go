// Package sharedstrings implements the deduplicated string table referenced
// by integer index from worksheet cells, with an in-memory strategy and a
// disk-paged strategy that bounds memory for very large dictionaries.
package sharedstrings

import "errors"

// ErrStalePage is returned when a write targets an index whose page has
// already been flushed to disk. Writes must arrive in non-decreasing page
// order.
var ErrStalePage = errors.New("sharedstrings: page already flushed")

// Store holds strings addressable by a stable integer index. Once written,
// an index is permanent and never reassigned to a different string. A Store
// is owned by a single goroutine; it performs no locking.
type Store interface {
	// AddString records value at the given index.
	AddString(index int, value string) error
	// GetString returns the string at index, or false when the index has
	// not been written or cannot currently be read back.
	GetString(index int) (string, bool)
	// Count returns the maximum observed index + 1 across all writes.
	Count() int
	// Cleanup releases all resources held by the store. It is idempotent
	// and safe to call on early abandonment; it never fails outward.
	Cleanup()
}

// MemoryStore keeps the whole index space in memory. Suitable for small
// dictionaries and for tests.
type MemoryStore struct {
	values map[int]string
	count  int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[int]string)}
}

// AddString records value at index.
func (m *MemoryStore) AddString(index int, value string) error {
	m.values[index] = value
	if index+1 > m.count {
		m.count = index + 1
	}
	return nil
}

// GetString returns the string at index.
func (m *MemoryStore) GetString(index int) (string, bool) {
	v, ok := m.values[index]
	return v, ok
}

// Count returns the maximum observed index + 1.
func (m *MemoryStore) Count() int {
	return m.count
}

// Cleanup drops the table.
func (m *MemoryStore) Cleanup() {
	m.values = make(map[int]string)
	m.count = 0
}
