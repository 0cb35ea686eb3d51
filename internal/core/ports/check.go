// Package ports defines the interfaces between the check engine and its
// adapters.
package ports

import (
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/quenchcheck/quench/internal/core/domain"
)

// Check is the contract every check implements. Checks run concurrently
// against one shared CheckContext and must not mutate it.
type Check interface {
	// Name returns the canonical check name used in reports.
	Name() string
	// Run executes the check against the shared context.
	Run(ctx *CheckContext) domain.CheckResult
	// DefaultEnabled reports whether the check runs without explicit
	// configuration.
	DefaultEnabled() bool
}

// CheckContext is the shared, read-only view of one run handed to every
// check. The violation counter is the only mutable field and is accessed
// through atomic operations exclusively.
type CheckContext struct {
	// Root is the absolute scan root.
	Root string
	// Files is the full walked file set.
	Files []domain.WalkedFile
	// Config is the fully-resolved configuration.
	Config *domain.Config
	// Fingerprint is the configuration fingerprint stamped into every
	// cache key produced this run.
	Fingerprint uint64
	// FS is the filesystem checks read file content through.
	FS afero.Fs
	// Cache serves memoized per-file payloads.
	Cache CacheStore
	// Log is the run logger.
	Log Logger

	// Limit caps total emitted violations across all checks; zero means
	// unlimited.
	Limit int
	// ViolationCount is the shared violation budget counter.
	ViolationCount *atomic.Int64
}

// TryViolation consumes one unit of the shared violation budget. It returns
// false once the configured limit is exceeded, at which point the calling
// check should stop emitting further violations but still complete. Which
// concurrent check wins the last units of the budget is intentionally left
// unspecified.
func (c *CheckContext) TryViolation() bool {
	n := c.ViolationCount.Add(1)
	return c.Limit <= 0 || n <= int64(c.Limit)
}

// CacheKey builds the cache key for a walked file using this run's
// configuration fingerprint. No I/O is performed; size and mtime were
// captured by the walker.
func (c *CheckContext) CacheKey(f domain.WalkedFile) domain.CacheKey {
	return domain.CacheKey{
		Path:              f.Path,
		Size:              f.Size,
		ModTime:           f.ModTime,
		ConfigFingerprint: c.Fingerprint,
	}
}

// ReadFile reads a walked file's content relative to the root.
func (c *CheckContext) ReadFile(f domain.WalkedFile) ([]byte, error) {
	return afero.ReadFile(c.FS, filepath.Join(c.Root, filepath.FromSlash(f.Path)))
}
