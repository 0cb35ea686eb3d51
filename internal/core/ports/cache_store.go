package ports

import "github.com/quenchcheck/quench/internal/core/domain"

// CacheStore serves per-file payloads memoized by checks in earlier runs.
// Lookups and updates are safe for concurrent use; updates become durable
// only when the owning run saves the store at the end.
type CacheStore interface {
	// Lookup returns the payload previously stored by the named check for
	// the given key. It is a hit iff the stored key equals the fresh key
	// exactly.
	Lookup(check string, key domain.CacheKey) ([]byte, bool)
	// Update stages a new entry, replacing any previous one for the same
	// check and path.
	Update(check string, key domain.CacheKey, payload []byte)
	// Stats returns the hit/miss counters accumulated so far.
	Stats() domain.CacheStats
}
