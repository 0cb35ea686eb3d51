package app_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quenchcheck/quench/internal/adapters/config"
	"github.com/quenchcheck/quench/internal/adapters/logger"
	"github.com/quenchcheck/quench/internal/app"
	"github.com/quenchcheck/quench/internal/core/domain"
)

func newApp(fs afero.Fs, verbose bool) (*app.App, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	loader := &config.FileLoader{FS: fs}
	a := app.New(fs, loader, logger.NewWithWriter(&logs, verbose), &out)
	return a, &out, &logs
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestCheck_EmptyProjectPasses(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/proj", 0o750))
	a, out, _ := newApp(fs, false)

	err := a.Check(context.Background(), app.CheckOptions{Dir: "/proj"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "PASS cloc")
	assert.Contains(t, out.String(), "PASS escapes")
	assert.Contains(t, out.String(), "PASS placeholders")
	assert.Contains(t, out.String(), "3 checks, 0 failed, 0 violations (0 files)")
}

func TestCheck_ViolationsFailTheRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/main.go", "package main\n// TODO: finish\n")
	a, out, _ := newApp(fs, false)

	err := a.Check(context.Background(), app.CheckOptions{Dir: "/proj"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrViolationsFound)

	assert.Contains(t, out.String(), "FAIL escapes (1 violations)")
	assert.Contains(t, out.String(), "main.go:2 [todo]")
}

func TestCheck_SecondRunIsFullyCached(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/a.go", "package a\n")
	writeFile(t, fs, "/proj/b.go", "package b\n")

	a, _, logs := newApp(fs, true)
	require.NoError(t, a.Check(context.Background(), app.CheckOptions{Dir: "/proj"}))
	assert.Contains(t, logs.String(), "Cache: 0 hits, 4 misses")

	a2, _, logs2 := newApp(fs, true)
	require.NoError(t, a2.Check(context.Background(), app.CheckOptions{Dir: "/proj"}))
	assert.Contains(t, logs2.String(), "Cache: 4 hits, 0 misses")
}

func TestCheck_OverridesInvalidateCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/a.go", "package a\n")

	a, _, logs := newApp(fs, true)
	require.NoError(t, a.Check(context.Background(), app.CheckOptions{Dir: "/proj"}))
	assert.Contains(t, logs.String(), "Cache: 0 hits, 2 misses")

	// A changed flag changes the fingerprint, so nothing hits.
	a2, _, logs2 := newApp(fs, true)
	require.NoError(t, a2.Check(context.Background(), app.CheckOptions{Dir: "/proj", Limit: 5}))
	assert.Contains(t, logs2.String(), "Cache: 0 hits, 2 misses")
}

func TestCheck_NoCacheSkipsPersistence(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/a.go", "package a\n")

	a, _, _ := newApp(fs, false)
	require.NoError(t, a.Check(context.Background(), app.CheckOptions{Dir: "/proj", NoCache: true}))

	exists, err := afero.Exists(fs, "/proj/.quench/cache.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheck_WritesLatestMetrics(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/a.go", "package a\n")

	a, _, _ := newApp(fs, false)
	require.NoError(t, a.Check(context.Background(), app.CheckOptions{Dir: "/proj"}))

	latest, err := app.LoadLatest(fs, "/proj")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.False(t, latest.Updated.IsZero())
	require.Len(t, latest.Results, 3)
	assert.Equal(t, "cloc", latest.Results[0].Name)
}

func TestCheck_HonorsConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/quench.yaml", "checks:\n  escapes:\n    enabled: false\n")
	writeFile(t, fs, "/proj/main.go", "package main\n// TODO: finish\n")

	a, out, _ := newApp(fs, false)
	err := a.Check(context.Background(), app.CheckOptions{Dir: "/proj"})
	require.NoError(t, err, "escapes is disabled so the marker is not flagged")

	assert.NotContains(t, out.String(), "escapes")
}

func TestClean_RemovesCacheDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/a.go", "package a\n")

	a, _, _ := newApp(fs, false)
	require.NoError(t, a.Check(context.Background(), app.CheckOptions{Dir: "/proj"}))
	exists, _ := afero.Exists(fs, "/proj/.quench/cache.bin")
	require.True(t, exists)

	require.NoError(t, a.Clean("/proj"))
	exists, _ = afero.Exists(fs, "/proj/.quench/cache.bin")
	assert.False(t, exists)
}

func TestLatestMetricsRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	missing, err := app.LoadLatest(fs, "/proj")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
