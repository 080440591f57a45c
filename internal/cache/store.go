package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is one stored request/response pair.
type Entry struct {
	Key      string    `json:"key"`
	Response string    `json:"response"`
	StoredAt time.Time `json:"stored_at"`
}

// Store keeps entries in insertion order. Implementations must be safe for
// concurrent use.
type Store interface {
	// Append adds an entry at the end. Duplicate keys accumulate.
	Append(ctx context.Context, entry Entry) error

	// Entries returns a snapshot of all entries in insertion order.
	Entries(ctx context.Context) ([]Entry, error)
}

// MemoryStore is the default in-process store: a mutex-guarded slice with a
// capacity bound. When the bound is exceeded the oldest entries are evicted.
type MemoryStore struct {
	mu         sync.Mutex
	entries    []Entry
	maxEntries int
}

// NewMemoryStore creates an in-memory store. maxEntries <= 0 means unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{maxEntries: maxEntries}
}

func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		overflow := len(s.entries) - s.maxEntries
		s.entries = append([]Entry(nil), s.entries[overflow:]...)
	}
	return nil
}

func (s *MemoryStore) Entries(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot, nil
}

// Len reports the current number of entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
