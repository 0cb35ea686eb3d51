package checks

import (
	"fmt"
	"sync"

	"github.com/quenchcheck/quench/internal/adapters/pattern"
	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
	"github.com/quenchcheck/quench/internal/engine/runner"
)

// EscapesCheck scans file content for configured escape-hatch patterns
// (suppression markers, TODO-style annotations) using the tiered matcher.
// Per-file match results are memoized in the cache.
type EscapesCheck struct{}

// NewEscapes creates the escapes check.
func NewEscapes() *EscapesCheck { return &EscapesCheck{} }

// Name implements ports.Check.
func (c *EscapesCheck) Name() string { return "escapes" }

// DefaultEnabled implements ports.Check.
func (c *EscapesCheck) DefaultEnabled() bool { return true }

// escapeRecord locates one match so violations can be rebuilt from the
// cache without re-reading the file. Pattern indexes into the configured
// pattern list; the config fingerprint in the cache key guarantees the list
// has not changed since the record was written.
type escapeRecord struct {
	Pattern int
	Line    int
	Text    string
}

// Run implements ports.Check.
func (c *EscapesCheck) Run(ctx *ports.CheckContext) domain.CheckResult {
	cfg := ctx.Config.Checks.Escapes

	// Patterns compile once per run and are shared read-only across all
	// files. An invalid user-supplied pattern is a configuration error
	// fatal to this check only.
	compiled := make([]*pattern.CompiledPattern, len(cfg.Patterns))
	for i, pc := range cfg.Patterns {
		p, err := pattern.Compile(pc.Pattern)
		if err != nil {
			return domain.SkippedResult(c.Name(), fmt.Sprintf("invalid pattern %q: %v", pc.Pattern, err))
		}
		compiled[i] = p
	}

	var (
		mu          sync.Mutex
		violations  []domain.Violation
		kindCounts  = map[string]int{}
		budgetSpent bool
	)

	runner.ForEachFile(ctx.Files, runner.DefaultBatchThreshold, func(f domain.WalkedFile) {
		if !isTextFile(f.Path) {
			return
		}

		records, ok := c.cachedRecords(ctx, f)
		if !ok {
			content, err := ctx.ReadFile(f)
			if err != nil {
				ctx.Log.Warn("failed to read file", "path", f.Path, "error", err)
				return
			}
			records = scanContent(content, compiled)
			if payload, err := encodePayload(records); err == nil {
				ctx.Cache.Update(c.Name(), ctx.CacheKey(f), payload)
			}
		}

		if len(records) == 0 {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for _, rec := range records {
			pc := cfg.Patterns[rec.Pattern]
			kindCounts[pc.Kind]++
			if budgetSpent {
				continue
			}
			if !ctx.TryViolation() {
				budgetSpent = true
				continue
			}
			violations = append(violations, domain.Violation{
				File:   f.Path,
				Line:   rec.Line,
				Kind:   pc.Kind,
				Advice: pc.Advice,
			})
		}
	})

	result := domain.PassedResult(c.Name())
	if len(violations) > 0 {
		sortViolations(violations)
		result = domain.FailedResult(c.Name(), violations)
	}

	metrics := make(map[string]any, len(kindCounts))
	for kind, n := range kindCounts {
		metrics[kind] = n
	}
	return result.WithMetrics(metrics)
}

// scanContent runs every compiled pattern over one buffer, sharing a single
// line index across all of them.
func scanContent(content []byte, compiled []*pattern.CompiledPattern) []escapeRecord {
	lines := pattern.NewLineIndex(content)
	var records []escapeRecord
	for i, p := range compiled {
		for _, m := range p.FindAll(content, lines) {
			records = append(records, escapeRecord{Pattern: i, Line: m.Line, Text: m.Text})
		}
	}
	return records
}

func (c *EscapesCheck) cachedRecords(ctx *ports.CheckContext, f domain.WalkedFile) ([]escapeRecord, bool) {
	payload, ok := ctx.Cache.Lookup(c.Name(), ctx.CacheKey(f))
	if !ok {
		return nil, false
	}
	var records []escapeRecord
	if err := decodePayload(payload, &records); err != nil {
		return nil, false
	}
	return records, true
}
