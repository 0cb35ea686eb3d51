package runner

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/quenchcheck/quench/internal/core/domain"
)

// DefaultBatchThreshold is the batch size below which per-file work runs
// sequentially; for small batches the pool dispatch overhead exceeds the
// work itself.
const DefaultBatchThreshold = 32

// ForEachFile applies fn to every file, sequentially for small batches and
// on a bounded parallel pool once the batch size crosses threshold. fn must
// be safe for concurrent invocation; no ordering is guaranteed in parallel
// mode.
func ForEachFile(files []domain.WalkedFile, threshold int, fn func(domain.WalkedFile)) {
	if threshold <= 0 {
		threshold = DefaultBatchThreshold
	}
	if len(files) < threshold {
		for _, f := range files {
			fn(f)
		}
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, f := range files {
		g.Go(func() error {
			fn(f)
			return nil
		})
	}
	_ = g.Wait()
}
