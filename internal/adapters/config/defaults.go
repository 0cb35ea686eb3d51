package config

import "github.com/quenchcheck/quench/internal/core/domain"

// Default returns the effective configuration used when no config file is
// present. A loaded file overrides these field by field.
func Default() *domain.Config {
	return &domain.Config{
		Version: 1,
		Walker: domain.WalkerConfig{
			Exclude:           []string{"vendor", "node_modules", "target", "dist", "build"},
			MaxFileSize:       5 * 1024 * 1024,
			ParallelThreshold: 1000,
			GitIgnore:         true,
		},
		Checks: domain.ChecksConfig{
			Cloc: domain.ClocConfig{
				Enabled:      true,
				MaxLines:     500,
				MaxLinesTest: 1000,
			},
			Escapes: domain.EscapesConfig{
				Enabled:  true,
				Patterns: defaultEscapePatterns(),
			},
			Placeholders: domain.PlaceholdersConfig{
				Enabled: true,
			},
		},
	}
}

// defaultEscapePatterns spans all three matcher tiers: a plain literal, a
// literal alternation, and a full regex.
func defaultEscapePatterns() []domain.PatternConfig {
	return []domain.PatternConfig{
		{
			Pattern: "TODO|FIXME|XXX|HACK",
			Kind:    "todo",
			Advice:  "Resolve the marker or file a tracked issue for it.",
		},
		{
			Pattern: "nolint",
			Kind:    "lint_suppression",
			Advice:  "Fix the underlying lint finding instead of suppressing it.",
		},
		{
			Pattern: `eslint-disable(-next-line)?`,
			Kind:    "lint_suppression",
			Advice:  "Fix the underlying lint finding instead of suppressing it.",
		},
	}
}
