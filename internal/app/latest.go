package app

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"github.com/quenchcheck/quench/internal/core/domain"
)

// latestFilename is the project-local file caching the most recent run's
// metrics for quick viewing without re-running the checks.
const latestFilename = ".quench/latest.json"

// LatestMetrics is the persisted snapshot of the most recent run.
type LatestMetrics struct {
	// Updated is the time the snapshot was written.
	Updated time.Time `json:"updated"`
	// Commit is the short HEAD hash when inside a git repository.
	Commit string `json:"commit,omitempty"`
	// Results holds the full per-check results including metrics.
	Results []domain.CheckResult `json:"results"`
}

// SaveLatest writes the snapshot under the project root, creating the
// .quench directory if needed.
func SaveLatest(afs afero.Fs, root string, m LatestMetrics) error {
	path := filepath.Join(root, latestFilename)
	if err := afs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create metrics directory")
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal latest metrics")
	}
	if err := afero.WriteFile(afs, path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write latest metrics"), "path", path)
	}
	return nil
}

// LoadLatest reads the snapshot, returning nil without error when none has
// been written yet.
func LoadLatest(afs afero.Fs, root string) (*LatestMetrics, error) {
	data, err := afero.ReadFile(afs, filepath.Join(root, latestFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read latest metrics")
	}
	var m LatestMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal latest metrics")
	}
	return &m, nil
}
