package domain

// CacheKey identifies one file's processed state for one run. Two keys are
// equal iff all fields match; that equality is the sole admission test for
// reusing a cached payload.
type CacheKey struct {
	// Path is the slash-separated path relative to the scan root.
	Path string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the modification time in nanoseconds since the Unix epoch.
	ModTime int64
	// ConfigFingerprint is the fingerprint of the effective configuration
	// under which the payload was computed. Any configuration change yields
	// a different fingerprint and therefore invalidates every entry at once.
	ConfigFingerprint uint64
}

// CacheEntry pairs a key with the opaque payload a check memoized for it.
// Entries are replaced wholesale on key mismatch, never mutated in place.
type CacheEntry struct {
	Key     CacheKey
	Payload []byte
}

// CacheStats counts cache lookups for one run.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}
