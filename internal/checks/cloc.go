package checks

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
	"github.com/quenchcheck/quench/internal/engine/runner"
)

// ClocCheck validates per-file line-count limits, with separate limits for
// source and test files.
type ClocCheck struct{}

// NewCloc creates the cloc check.
func NewCloc() *ClocCheck { return &ClocCheck{} }

// Name implements ports.Check.
func (c *ClocCheck) Name() string { return "cloc" }

// DefaultEnabled implements ports.Check.
func (c *ClocCheck) DefaultEnabled() bool { return true }

// clocRecord is the per-file payload memoized in the cache.
type clocRecord struct {
	Lines  int
	IsTest bool
}

// Run implements ports.Check.
func (c *ClocCheck) Run(ctx *ports.CheckContext) domain.CheckResult {
	cfg := ctx.Config.Checks.Cloc

	var (
		mu          sync.Mutex
		violations  []domain.Violation
		sourceLines int
		testLines   int
		budgetSpent bool
	)

	runner.ForEachFile(ctx.Files, runner.DefaultBatchThreshold, func(f domain.WalkedFile) {
		if !isTextFile(f.Path) {
			return
		}

		rec, ok := c.cachedRecord(ctx, f)
		if !ok {
			content, err := ctx.ReadFile(f)
			if err != nil {
				ctx.Log.Warn("failed to read file", "path", f.Path, "error", err)
				return
			}
			rec = clocRecord{Lines: countLines(content), IsTest: isTestFile(f.Path)}
			if payload, err := encodePayload(rec); err == nil {
				ctx.Cache.Update(c.Name(), ctx.CacheKey(f), payload)
			}
		}

		maxLines := cfg.MaxLines
		if rec.IsTest {
			maxLines = cfg.MaxLinesTest
		}

		mu.Lock()
		defer mu.Unlock()
		if rec.IsTest {
			testLines += rec.Lines
		} else {
			sourceLines += rec.Lines
		}
		if maxLines > 0 && rec.Lines > maxLines && !budgetSpent {
			if !ctx.TryViolation() {
				budgetSpent = true
				return
			}
			violations = append(violations, domain.Violation{
				File:      f.Path,
				Kind:      "file_too_large",
				Advice:    fmt.Sprintf("Split into smaller modules. %d lines exceeds the %d line limit.", rec.Lines, maxLines),
				Value:     int64(rec.Lines),
				Threshold: int64(maxLines),
			})
		}
	})

	result := domain.PassedResult(c.Name())
	if len(violations) > 0 {
		sortViolations(violations)
		result = domain.FailedResult(c.Name(), violations)
	}

	ratio := 0.0
	if sourceLines > 0 {
		ratio = math.Round(float64(testLines)/float64(sourceLines)*100) / 100
	}
	return result.WithMetrics(map[string]any{
		"source_lines": sourceLines,
		"test_lines":   testLines,
		"ratio":        ratio,
	})
}

func (c *ClocCheck) cachedRecord(ctx *ports.CheckContext, f domain.WalkedFile) (clocRecord, bool) {
	payload, ok := ctx.Cache.Lookup(c.Name(), ctx.CacheKey(f))
	if !ok {
		return clocRecord{}, false
	}
	var rec clocRecord
	if err := decodePayload(payload, &rec); err != nil {
		return clocRecord{}, false
	}
	return rec, true
}

// countLines counts lines the way editors do: a trailing fragment without a
// newline still counts as a line.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
