// Package domain contains the core types shared across the check engine.
package domain

// WalkedFile is a single regular file discovered by the walker.
// Instances are created once per walk and never mutated afterwards.
type WalkedFile struct {
	// Path is the slash-separated path relative to the scan root.
	Path string
	// Size is the file size in bytes at walk time.
	Size int64
	// ModTime is the modification time in nanoseconds since the Unix epoch,
	// captured at walk time so cache keys can be built without re-statting.
	ModTime int64
	// Depth counts path components from the root; direct children are 1.
	Depth int
	// IsSymlinkLoop marks a file whose symlink target resolves back into
	// one of its own ancestors.
	IsSymlinkLoop bool
}
