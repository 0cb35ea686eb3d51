// Package checks contains the built-in checks.
package checks

import (
	"sort"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// Names is the canonical check order used for report output, regardless of
// the order checks happen to complete in.
func Names() []string {
	return []string{"cloc", "escapes", "placeholders"}
}

// All returns the checks enabled under cfg, in canonical order.
func All(cfg *domain.Config) []ports.Check {
	var out []ports.Check
	if cfg.Checks.Cloc.Enabled {
		out = append(out, NewCloc())
	}
	if cfg.Checks.Escapes.Enabled {
		out = append(out, NewEscapes())
	}
	if cfg.Checks.Placeholders.Enabled {
		out = append(out, NewPlaceholders())
	}
	return out
}

// sortViolations orders violations by file then line, so parallel per-file
// processing does not leak its scheduling into the report.
func sortViolations(violations []domain.Violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		return violations[i].Line < violations[j].Line
	})
}
