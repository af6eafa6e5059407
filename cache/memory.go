package cache

import (
	"sync"
	"time"

	"github.com/LumaLabs/lexipage"
)

// record holds a cached entry with the time it was stored.
type record struct {
	entry    lexipage.Entry
	storedAt time.Time
}

// InMemoryStore is a thread-safe in-memory store with optional TTL.
// Keys are normalized on every access.
type InMemoryStore struct {
	entries map[string]record
	mu      sync.RWMutex
	ttl     time.Duration
}

// NewInMemoryStore creates a new in-memory store with the specified TTL.
// If ttlSeconds is 0 or negative, entries never expire.
func NewInMemoryStore(ttlSeconds int) *InMemoryStore {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0 // No expiration
	}
	return &InMemoryStore{
		entries: make(map[string]record),
		ttl:     ttl,
	}
}

// Get retrieves an entry from the store.
// Returns the entry and true if found and not expired.
func (s *InMemoryStore) Get(key string) (lexipage.Entry, bool) {
	key = lexipage.NormalizeKey(key)

	s.mu.RLock()
	rec, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return lexipage.Entry{}, false
	}

	// Check TTL if enabled
	if s.ttl > 0 && time.Since(rec.storedAt) > s.ttl {
		// Entry expired - clean it up
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return lexipage.Entry{}, false
	}

	return rec.entry, true
}

// Put stores an entry.
func (s *InMemoryStore) Put(key string, e lexipage.Entry) error {
	key = lexipage.NormalizeKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = record{
		entry:    e,
		storedAt: time.Now(),
	}
	return nil
}

// Len returns the number of entries in the store (including expired ones).
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries from the store.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]record)
}

// Entries returns all non-expired entries keyed by normalized phrase.
// This is used for cache export.
func (s *InMemoryStore) Entries() map[string]lexipage.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]lexipage.Entry)
	now := time.Now()

	for key, rec := range s.entries {
		// Skip expired entries
		if s.ttl > 0 && now.Sub(rec.storedAt) > s.ttl {
			continue
		}
		result[key] = rec.entry
	}

	return result
}

// Verify InMemoryStore implements Store
var _ Store = (*InMemoryStore)(nil)
