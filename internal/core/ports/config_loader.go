package ports

import "github.com/quenchcheck/quench/internal/core/domain"

// ConfigLoader resolves the effective configuration for a scan root.
type ConfigLoader interface {
	// Load returns the effective configuration for the given working
	// directory, applying defaults when no config file is found.
	Load(cwd string) (*domain.Config, error)
}
