package checks

import (
	"path"
	"strings"
)

// textExtensions lists the file types the checks read. Everything else is
// treated as binary and skipped.
var textExtensions = map[string]bool{
	".go": true, ".rs": true, ".py": true, ".rb": true, ".sh": true,
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true,
	".c": true, ".h": true, ".cc": true, ".cpp": true, ".hpp": true,
	".java": true, ".kt": true, ".swift": true, ".zig": true,
	".md": true, ".txt": true, ".yaml": true, ".yml": true, ".toml": true,
	".json": true, ".sql": true, ".proto": true,
}

func isTextFile(p string) bool {
	return textExtensions[strings.ToLower(path.Ext(p))]
}

// isTestFile classifies a relative path as test code using common naming
// conventions across the supported languages.
func isTestFile(p string) bool {
	base := path.Base(p)
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasSuffix(base, "_test.rs"),
		strings.HasSuffix(base, "_spec.rb"),
		strings.HasPrefix(base, "test_"):
		return true
	}
	for _, marker := range []string{".test.", ".spec."} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	for _, dir := range strings.Split(path.Dir(p), "/") {
		if dir == "tests" || dir == "test" || dir == "__tests__" || dir == "spec" {
			return true
		}
	}
	return false
}
