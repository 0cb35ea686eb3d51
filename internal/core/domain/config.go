package domain

// Config is the fully-resolved configuration for one run, after defaults and
// CLI overrides are applied. The engine only reads the fields it needs plus
// the fingerprint computed from the whole struct; the per-check sections are
// interpreted by the checks themselves.
type Config struct {
	Version int          `yaml:"version"`
	Walker  WalkerConfig `yaml:"walker"`
	Checks  ChecksConfig `yaml:"checks"`
	// Limit caps the total number of violations emitted across all checks.
	// Zero means unlimited.
	Limit int `yaml:"limit"`
}

// WalkerConfig controls file discovery.
type WalkerConfig struct {
	// MaxDepth is the inclusive depth limit; zero means unlimited.
	MaxDepth int `yaml:"max_depth"`
	// Exclude lists glob patterns pruned during traversal.
	Exclude []string `yaml:"exclude"`
	// MaxFileSize skips files above this many bytes; zero means unlimited.
	MaxFileSize int64 `yaml:"max_file_size"`
	// ParallelThreshold tunes the adaptive traversal heuristic: parallel
	// mode is selected when the root has more than ParallelThreshold/10
	// direct entries.
	ParallelThreshold int `yaml:"parallel_threshold"`
	// ForceParallel and ForceSequential bypass the heuristic entirely.
	ForceParallel   bool `yaml:"force_parallel"`
	ForceSequential bool `yaml:"force_sequential"`
	// Hidden includes dot-files and dot-directories when true.
	Hidden bool `yaml:"hidden"`
	// GitIgnore honors .gitignore rules when the root is a git repository.
	GitIgnore bool `yaml:"git_ignore"`
}

// ChecksConfig holds the per-check sections.
type ChecksConfig struct {
	Cloc         ClocConfig         `yaml:"cloc"`
	Escapes      EscapesConfig      `yaml:"escapes"`
	Placeholders PlaceholdersConfig `yaml:"placeholders"`
}

// ClocConfig configures the line-count check.
type ClocConfig struct {
	Enabled bool `yaml:"enabled"`
	// MaxLines is the line limit for source files, MaxLinesTest for test files.
	MaxLines     int `yaml:"max_lines"`
	MaxLinesTest int `yaml:"max_lines_test"`
}

// EscapesConfig configures the escape-hatch pattern check.
type EscapesConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Patterns []PatternConfig `yaml:"patterns"`
}

// PatternConfig is one escape-hatch pattern with its violation metadata.
type PatternConfig struct {
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
	Advice  string `yaml:"advice"`
}

// PlaceholdersConfig configures the placeholder-test check.
type PlaceholdersConfig struct {
	Enabled bool `yaml:"enabled"`
}
