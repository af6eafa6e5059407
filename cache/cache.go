// Package cache provides dictionary entry cache stores.
package cache

import "github.com/LumaLabs/lexipage"

// Store is the interface for entry caching.
type Store interface {
	// Get retrieves a cached entry. Returns a zero entry and false if not
	// found or expired. A miss is never an error.
	Get(key string) (lexipage.Entry, bool)

	// Put stores an entry, persisting it before returning. An existing
	// entry for the same key is replaced.
	Put(key string, e lexipage.Entry) error
}
