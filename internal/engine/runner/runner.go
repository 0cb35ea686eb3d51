// Package runner executes the registered checks concurrently.
package runner

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// Runner executes a set of checks against one shared, read-only context.
// Checks run concurrently in arbitrary interleaving; the only guarantee is
// that the assembled output is presented in canonical check order.
type Runner struct {
	log ports.Logger
}

// New creates a Runner.
func New(log ports.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes every check and returns one result per check, ordered by the
// canonical order of the checks slice. A panic inside a check is confined
// to that check: it is reported as a skipped result with a diagnostic and
// the remaining checks complete normally. There is no mid-run cancellation;
// a run always returns a full result set.
func (r *Runner) Run(checks []ports.Check, ctx *ports.CheckContext) []domain.CheckResult {
	results := make([]domain.CheckResult, len(checks))

	g := new(errgroup.Group)
	for i, check := range checks {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					r.log.Warn("check panicked", "check", check.Name(), "panic", fmt.Sprint(rec))
					results[i] = domain.SkippedResult(check.Name(), fmt.Sprintf("internal error: %v", rec))
				}
			}()
			results[i] = check.Run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	// Results are already slotted by check index, but sort explicitly by
	// canonical name order so the guarantee does not depend on slotting.
	pos := make(map[string]int, len(checks))
	for i, check := range checks {
		pos[check.Name()] = i
	}
	sort.SliceStable(results, func(a, b int) bool {
		return pos[results[a].Name] < pos[results[b].Name]
	})
	return results
}
