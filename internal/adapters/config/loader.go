// Package config provides the configuration loader for quench.
package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// DefaultFilename is the config file discovered in the project tree.
const DefaultFilename = "quench.yaml"

// FileLoader implements ports.ConfigLoader using a YAML file discovered by
// walking up from the working directory to the git root.
type FileLoader struct {
	FS afero.Fs
	// Path pins an explicit config file, bypassing discovery.
	Path string
}

var _ ports.ConfigLoader = (*FileLoader)(nil)

// Load returns the effective configuration for cwd. A missing config file
// yields the defaults; an unparseable one is a hard error, since running
// with a half-applied configuration would silently change results.
func (l *FileLoader) Load(cwd string) (*domain.Config, error) {
	path := l.Path
	if path == "" {
		path = FindConfig(l.FS, cwd)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := afero.ReadFile(l.FS, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}
	return cfg, nil
}

// FindConfig looks for quench.yaml starting at start and walking up,
// stopping at the git root. Returns "" when no config file exists.
func FindConfig(fs afero.Fs, start string) string {
	current := filepath.Clean(start)
	for {
		candidate := filepath.Join(current, DefaultFilename)
		if ok, _ := afero.Exists(fs, candidate); ok {
			return candidate
		}
		if ok, _ := afero.DirExists(fs, filepath.Join(current, ".git")); ok {
			return ""
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
