// Package app wires the adapters together and orchestrates one run.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"github.com/quenchcheck/quench/internal/adapters/cache"
	"github.com/quenchcheck/quench/internal/adapters/config"
	"github.com/quenchcheck/quench/internal/adapters/git"
	"github.com/quenchcheck/quench/internal/adapters/walker"
	"github.com/quenchcheck/quench/internal/checks"
	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
	"github.com/quenchcheck/quench/internal/engine/runner"
)

// App coordinates a full scan: configuration, walking, cache, checks, and
// the final report.
type App struct {
	fs     afero.Fs
	loader ports.ConfigLoader
	log    ports.Logger
	out    io.Writer
}

// New creates an App.
func New(fs afero.Fs, loader ports.ConfigLoader, log ports.Logger, out io.Writer) *App {
	return &App{fs: fs, loader: loader, log: log, out: out}
}

// CheckOptions carries the CLI overrides applied on top of the loaded
// configuration.
type CheckOptions struct {
	Dir             string
	MaxDepth        int
	ForceParallel   bool
	ForceSequential bool
	NoCache         bool
	Limit           int
}

// Check runs all enabled checks over the project at opts.Dir. It returns
// domain.ErrViolationsFound when the run completed but found violations, so
// the CLI can exit non-zero without treating the run as broken.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve scan root")
	}

	cfg, err := a.loader.Load(root)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	// The fingerprint covers the effective configuration, overrides
	// included, so a flag change invalidates the cache like an edit to
	// quench.yaml would.
	fingerprint, err := config.Fingerprint(cfg)
	if err != nil {
		return err
	}

	files, stats, err := walker.New(cfg.Walker, a.fs, a.log).Walk(root)
	if err != nil {
		return err
	}
	a.log.Debug("walk finished",
		"files", stats.FilesFound,
		"errors", stats.Errors,
		"symlink_loops", stats.SymlinkLoops,
		"skipped_size", stats.FilesSkippedSize,
	)

	var (
		store      ports.CacheStore
		persistent *cache.Store
	)
	if opts.NoCache {
		store = cache.NewNop()
	} else {
		persistent = cache.Open(a.fs, root, a.log)
		store = persistent
	}

	cctx := &ports.CheckContext{
		Root:           root,
		Files:          files,
		Config:         cfg,
		Fingerprint:    fingerprint,
		FS:             a.fs,
		Cache:          store,
		Log:            a.log,
		Limit:          cfg.Limit,
		ViolationCount: new(atomic.Int64),
	}

	results := runner.New(a.log).Run(checks.All(cfg), cctx)

	if persistent != nil {
		if err := persistent.Save(); err != nil {
			a.log.Warn("failed to persist cache", "error", err)
		}
	}

	cs := store.Stats()
	a.log.Debug(fmt.Sprintf("Cache: %d hits, %d misses", cs.Hits, cs.Misses))

	a.saveLatest(ctx, root, results)
	a.render(results, stats)

	for _, r := range results {
		if !r.Passed && !r.Skipped {
			return zerr.With(domain.ErrViolationsFound, "violations", cctx.ViolationCount.Load())
		}
	}
	return nil
}

// Clean removes the project-local cache directory.
func (a *App) Clean(dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve scan root")
	}
	return cache.Clean(a.fs, root)
}

func applyOverrides(cfg *domain.Config, opts CheckOptions) {
	if opts.MaxDepth > 0 {
		cfg.Walker.MaxDepth = opts.MaxDepth
	}
	if opts.ForceParallel {
		cfg.Walker.ForceParallel = true
		cfg.Walker.ForceSequential = false
	}
	if opts.ForceSequential {
		cfg.Walker.ForceSequential = true
		cfg.Walker.ForceParallel = false
	}
	if opts.Limit > 0 {
		cfg.Limit = opts.Limit
	}
}

// saveLatest writes the latest-metrics file. Best effort: a failure here
// degrades into a log line, never into a failed run.
func (a *App) saveLatest(ctx context.Context, root string, results []domain.CheckResult) {
	latest := LatestMetrics{Updated: time.Now().UTC(), Results: results}
	if commit, err := git.HeadCommit(ctx, root); err == nil {
		latest.Commit = commit
	}
	if err := SaveLatest(a.fs, root, latest); err != nil {
		a.log.Warn("failed to write latest metrics", "error", err)
	}
}

// render prints the minimal text report.
func (a *App) render(results []domain.CheckResult, stats walker.Stats) {
	failed := 0
	violations := 0
	for _, r := range results {
		switch {
		case r.Skipped:
			fmt.Fprintf(a.out, "SKIP %s: %s\n", r.Name, r.SkipReason)
		case r.Passed:
			fmt.Fprintf(a.out, "PASS %s\n", r.Name)
		default:
			failed++
			violations += len(r.Violations)
			fmt.Fprintf(a.out, "FAIL %s (%d violations)\n", r.Name, len(r.Violations))
			for _, v := range r.Violations {
				if v.Line > 0 {
					fmt.Fprintf(a.out, "  %s:%d [%s] %s\n", v.File, v.Line, v.Kind, v.Advice)
				} else {
					fmt.Fprintf(a.out, "  %s [%s] %s\n", v.File, v.Kind, v.Advice)
				}
			}
		}
	}

	fmt.Fprintf(a.out, "%d checks, %d failed, %d violations (%d files", len(results), failed, violations, stats.FilesFound)
	if stats.FilesSkippedSize > 0 {
		fmt.Fprintf(a.out, ", %d skipped by size", stats.FilesSkippedSize)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(a.out, ", %d errors", stats.Errors)
	}
	fmt.Fprintln(a.out, ")")
}
