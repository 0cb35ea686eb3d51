package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quenchcheck/quench/internal/adapters/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/proj", 0o750))

	loader := &config.FileLoader{FS: fs}
	cfg, err := loader.Load("/proj")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverridesMergeOntoDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
version: 1
walker:
  max_depth: 3
checks:
  cloc:
    max_lines: 200
`
	require.NoError(t, afero.WriteFile(fs, "/proj/quench.yaml", []byte(content), 0o644))

	loader := &config.FileLoader{FS: fs}
	cfg, err := loader.Load("/proj")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Walker.MaxDepth)
	assert.Equal(t, 200, cfg.Checks.Cloc.MaxLines)
	// Absent fields keep their defaults.
	assert.Equal(t, 1000, cfg.Checks.Cloc.MaxLinesTest)
	assert.Equal(t, int64(5*1024*1024), cfg.Walker.MaxFileSize)
	assert.True(t, cfg.Checks.Escapes.Enabled)
	assert.NotEmpty(t, cfg.Checks.Escapes.Patterns)
}

func TestLoad_DisablingACheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
checks:
  placeholders:
    enabled: false
`
	require.NoError(t, afero.WriteFile(fs, "/proj/quench.yaml", []byte(content), 0o644))

	loader := &config.FileLoader{FS: fs}
	cfg, err := loader.Load("/proj")
	require.NoError(t, err)

	assert.False(t, cfg.Checks.Placeholders.Enabled)
	assert.True(t, cfg.Checks.Cloc.Enabled)
}

func TestLoad_UnparseableFileIsAHardError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/quench.yaml", []byte("walker: [not a map"), 0o644))

	loader := &config.FileLoader{FS: fs}
	_, err := loader.Load("/proj")
	require.Error(t, err)
}

func TestLoad_ExplicitPathBypassesDiscovery(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/custom.yaml", []byte("walker:\n  max_depth: 9\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/quench.yaml", []byte("walker:\n  max_depth: 1\n"), 0o644))

	loader := &config.FileLoader{FS: fs, Path: "/etc/custom.yaml"}
	cfg, err := loader.Load("/proj")
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Walker.MaxDepth)
}

func TestLoad_ExplicitMissingPathIsAHardError(t *testing.T) {
	fs := afero.NewMemMapFs()
	loader := &config.FileLoader{FS: fs, Path: "/nope/quench.yaml"}

	_, err := loader.Load("/proj")
	require.Error(t, err)
}

func TestFindConfig_WalksUpToGitRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo/.git", 0o750))
	require.NoError(t, afero.WriteFile(fs, "/repo/quench.yaml", []byte("{}"), 0o644))
	require.NoError(t, fs.MkdirAll("/repo/sub/deep", 0o750))

	assert.Equal(t, "/repo/quench.yaml", config.FindConfig(fs, "/repo/sub/deep"))
}

func TestFindConfig_StopsAtGitRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	// Config above the repository root must not be picked up.
	require.NoError(t, afero.WriteFile(fs, "/quench.yaml", []byte("{}"), 0o644))
	require.NoError(t, fs.MkdirAll("/repo/.git", 0o750))
	require.NoError(t, fs.MkdirAll("/repo/sub", 0o750))

	assert.Empty(t, config.FindConfig(fs, "/repo/sub"))
}

func TestFindConfig_NoConfigAnywhere(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/a/b", 0o750))

	assert.Empty(t, config.FindConfig(fs, "/a/b"))
}
