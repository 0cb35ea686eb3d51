// Package cache implements the persistent per-file result cache.
//
// One binary file under the project-local .quench directory holds every
// entry. The store is exclusively owned by one running process: loaded once
// at open, consulted during the run, written back once at save. Concurrent
// processes racing on the same file resolve last-writer-wins.
package cache

import (
	"bytes"
	"encoding/gob"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// formatVersion tags the on-disk layout. A mismatch discards the cache
// wholesale rather than attempting migration.
const formatVersion uint32 = 1

const (
	dirName  = ".quench"
	fileName = "cache.bin"
)

// Path returns the cache file location for a project root.
func Path(root string) string {
	return filepath.Join(root, dirName, fileName)
}

// envelope is the serialized form of the store.
type envelope struct {
	Version uint32
	Entries map[string]domain.CacheEntry
}

// Store implements ports.CacheStore backed by one gob-encoded file.
type Store struct {
	fs   afero.Fs
	path string
	log  ports.Logger

	mu      sync.RWMutex
	entries map[string]domain.CacheEntry

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ ports.CacheStore = (*Store)(nil)

// Open loads the cache for a project root. A missing, truncated,
// version-mismatched, or undecodable cache file yields an empty cache;
// corruption is never an error that aborts the run.
func Open(fs afero.Fs, root string, log ports.Logger) *Store {
	s := &Store{
		fs:      fs,
		path:    Path(root),
		log:     log,
		entries: make(map[string]domain.CacheEntry),
	}

	data, err := afero.ReadFile(fs, s.path)
	if err != nil {
		return s
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		log.Debug("discarding unreadable cache file", "path", s.path, "error", err)
		return s
	}
	if env.Version != formatVersion {
		log.Debug("discarding cache with mismatched version", "found", env.Version, "want", formatVersion)
		return s
	}
	if env.Entries != nil {
		s.entries = env.Entries
	}
	return s
}

// entryKey namespaces entries per check so several checks can memoize
// independent payloads for the same file.
func entryKey(check, path string) string {
	return check + "\x00" + path
}

// Lookup serves a prior payload iff the stored key is bit-for-bit equal to
// the freshly computed key. Key equality is the sole admission test; there
// is no per-entry awareness of what changed.
func (s *Store) Lookup(check string, key domain.CacheKey) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[entryKey(check, key.Path)]
	s.mu.RUnlock()

	if !ok || entry.Key != key {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return entry.Payload, true
}

// Update stages a new entry, replacing any prior entry for the same check
// and path wholesale.
func (s *Store) Update(check string, key domain.CacheKey, payload []byte) {
	s.mu.Lock()
	s.entries[entryKey(check, key.Path)] = domain.CacheEntry{Key: key, Payload: payload}
	s.mu.Unlock()
}

// Stats returns the hit/miss counters for this run.
func (s *Store) Stats() domain.CacheStats {
	return domain.CacheStats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// Save writes the store back to disk atomically (temp file plus rename), so
// a crash mid-write leaves the previous cache intact.
func (s *Store) Save() error {
	s.mu.RLock()
	env := envelope{Version: formatVersion, Entries: s.entries}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(env)
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to encode cache")
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "dir", dir)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache file"), "path", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace cache file"), "path", s.path)
	}
	return nil
}

// Clean removes the project-local cache directory.
func Clean(fs afero.Fs, root string) error {
	if err := fs.RemoveAll(filepath.Join(root, dirName)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "root", root)
	}
	return nil
}
