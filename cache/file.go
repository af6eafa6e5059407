package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/LumaLabs/lexipage"
	"go.uber.org/zap"
)

// FileStore is a flat-file JSON store: a single document mapping normalized
// phrase to entry, loaded fully into memory at open and rewritten fully on
// each Put. One mutex serializes writers, so the file is never partially
// written by interleaved requests. Reads are served from the in-memory
// mirror.
type FileStore struct {
	path    string
	entries map[string]lexipage.Entry
	mu      sync.RWMutex
	log     *zap.Logger
}

// FileOption is a functional option for configuring the FileStore.
type FileOption func(*FileStore)

// WithFileLogger sets the logger used to report load and persist problems.
func WithFileLogger(log *zap.Logger) FileOption {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}

// OpenFileStore opens (or creates) a file store at the given path. A missing
// or unreadable file is not fatal: the store starts empty and the condition
// is logged, since the cache is an optimization, not a source of truth. The
// returned error only reports failure to create the parent directory.
func OpenFileStore(path string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]lexipage.Entry),
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &lexipage.CacheError{Message: "creating cache directory", Cause: err}
		}
	}

	s.load()
	return s, nil
}

// load reads the cache file into the in-memory mirror. Any failure leaves
// the store empty.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cache file unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	var entries map[string]lexipage.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("cache file corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	if entries == nil {
		// A file holding the JSON literal "null" decodes to a nil map;
		// keep the empty one so Put never writes into nil.
		return
	}

	s.entries = entries
	s.log.Info("cache loaded", zap.String("path", s.path), zap.Int("entries", len(entries)))
}

// Get retrieves an entry from the in-memory mirror.
func (s *FileStore) Get(key string) (lexipage.Entry, bool) {
	key = lexipage.NormalizeKey(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put stores an entry and rewrites the whole file. On a write failure the
// in-memory entry is kept and the error returned; the caller decides whether
// losing the entry on restart is acceptable.
func (s *FileStore) Put(key string, e lexipage.Entry) error {
	key = lexipage.NormalizeKey(key)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = e
	return s.persist()
}

// persist writes the full entry map to the file (must be called with the
// write lock held). The write goes through a temp file and rename so a crash
// mid-write never leaves a truncated document.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return &lexipage.CacheError{Message: "encoding cache file", Cause: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error("writing cache file failed", zap.String("path", s.path), zap.Error(err))
		return &lexipage.CacheError{Message: "writing cache file", Cause: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error("replacing cache file failed", zap.String("path", s.path), zap.Error(err))
		return &lexipage.CacheError{Message: "replacing cache file", Cause: err}
	}

	return nil
}

// Len returns the number of entries in the store.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Entries returns a copy of all entries keyed by normalized phrase.
// This is used for cache export.
func (s *FileStore) Entries() map[string]lexipage.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]lexipage.Entry, len(s.entries))
	for key, entry := range s.entries {
		result[key] = entry
	}
	return result
}

// Verify FileStore implements Store
var _ Store = (*FileStore)(nil)
