package checks

import (
	"sync"

	"github.com/quenchcheck/quench/internal/adapters/pattern"
	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
	"github.com/quenchcheck/quench/internal/engine/runner"
)

// placeholderMarkers are the skip/todo idioms that indicate a test exists
// in name only. They compile to a single multi-literal automaton.
var placeholderMarkers = []string{
	"t.Skip(",
	"t.Skipf(",
	"t.SkipNow(",
	"it.todo(",
	"test.todo(",
	"it.skip(",
	"test.skip(",
	"@unittest.skip",
	"pytest.mark.skip",
}

// PlaceholdersCheck detects placeholder tests that need implementation.
type PlaceholdersCheck struct{}

// NewPlaceholders creates the placeholders check.
func NewPlaceholders() *PlaceholdersCheck { return &PlaceholdersCheck{} }

// Name implements ports.Check.
func (c *PlaceholdersCheck) Name() string { return "placeholders" }

// DefaultEnabled implements ports.Check.
func (c *PlaceholdersCheck) DefaultEnabled() bool { return true }

// Run implements ports.Check.
func (c *PlaceholdersCheck) Run(ctx *ports.CheckContext) domain.CheckResult {
	matcher := pattern.CompileLiterals(placeholderMarkers)

	var (
		mu          sync.Mutex
		violations  []domain.Violation
		found       int
		budgetSpent bool
	)

	runner.ForEachFile(ctx.Files, runner.DefaultBatchThreshold, func(f domain.WalkedFile) {
		if !isTextFile(f.Path) || !isTestFile(f.Path) {
			return
		}
		content, err := ctx.ReadFile(f)
		if err != nil {
			ctx.Log.Warn("failed to read file", "path", f.Path, "error", err)
			return
		}

		matches := matcher.FindAll(content, nil)
		if len(matches) == 0 {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		found += len(matches)
		for _, m := range matches {
			if budgetSpent {
				break
			}
			if !ctx.TryViolation() {
				budgetSpent = true
				break
			}
			violations = append(violations, domain.Violation{
				File:   f.Path,
				Line:   m.Line,
				Kind:   "placeholder",
				Advice: "Implement the test or remove the placeholder.",
			})
		}
	})

	result := domain.PassedResult(c.Name())
	if len(violations) > 0 {
		sortViolations(violations)
		result = domain.FailedResult(c.Name(), violations)
	}
	return result.WithMetrics(map[string]any{"placeholders": found})
}
