package config

import (
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/quenchcheck/quench/internal/core/domain"
)

// Fingerprint derives a single hash from the entire effective configuration
// (after defaults and overrides). It is stamped into every cache key
// produced during a run, so any configuration change invalidates the whole
// cache in one comparison.
func Fingerprint(cfg *domain.Config) (uint64, error) {
	// Marshalling the struct yields a canonical byte form: field order is
	// fixed by the type, not by the input file.
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to serialize config for fingerprinting")
	}
	return xxhash.Sum64(data), nil
}
