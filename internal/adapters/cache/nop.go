package cache

import (
	"sync/atomic"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// nopStore is a CacheStore that never hits and never persists, used when
// the cache is bypassed from the CLI. Lookups still count as misses so
// verbose statistics stay truthful.
type nopStore struct {
	misses atomic.Uint64
}

var _ ports.CacheStore = (*nopStore)(nil)

// NewNop returns a cache store that records nothing.
func NewNop() ports.CacheStore {
	return &nopStore{}
}

func (n *nopStore) Lookup(string, domain.CacheKey) ([]byte, bool) {
	n.misses.Add(1)
	return nil, false
}

func (n *nopStore) Update(string, domain.CacheKey, []byte) {}

func (n *nopStore) Stats() domain.CacheStats {
	return domain.CacheStats{Misses: n.misses.Load()}
}
