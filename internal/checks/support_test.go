package checks_test

import (
	"io"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/quenchcheck/quench/internal/adapters/cache"
	"github.com/quenchcheck/quench/internal/adapters/config"
	"github.com/quenchcheck/quench/internal/adapters/logger"
	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

const testRoot = "/proj"

// newCheckContext materializes files on an in-memory filesystem and builds
// the shared context the runner would normally assemble.
func newCheckContext(t *testing.T, files map[string]string, cfg *domain.Config, store ports.CacheStore) *ports.CheckContext {
	t.Helper()

	fs := afero.NewMemMapFs()
	walked := make([]domain.WalkedFile, 0, len(files))
	for rel, content := range files {
		abs := filepath.Join(testRoot, filepath.FromSlash(rel))
		require.NoError(t, fs.MkdirAll(filepath.Dir(abs), 0o750))
		require.NoError(t, afero.WriteFile(fs, abs, []byte(content), 0o644))
		info, err := fs.Stat(abs)
		require.NoError(t, err)
		walked = append(walked, domain.WalkedFile{
			Path:    rel,
			Size:    info.Size(),
			ModTime: info.ModTime().UnixNano(),
			Depth:   1,
		})
	}
	sort.Slice(walked, func(i, j int) bool { return walked[i].Path < walked[j].Path })

	if cfg == nil {
		cfg = config.Default()
	}
	if store == nil {
		store = cache.NewNop()
	}
	fp, err := config.Fingerprint(cfg)
	require.NoError(t, err)

	return &ports.CheckContext{
		Root:           testRoot,
		Files:          walked,
		Config:         cfg,
		Fingerprint:    fp,
		FS:             fs,
		Cache:          store,
		Log:            logger.NewWithWriter(io.Discard, false),
		Limit:          cfg.Limit,
		ViolationCount: new(atomic.Int64),
	}
}

func repeatLines(line string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += line + "\n"
	}
	return out
}
