package domain

import "go.trai.ch/zerr"

var (
	// ErrRootNotFound is returned when the scan root does not exist.
	ErrRootNotFound = zerr.New("scan root not found")

	// ErrViolationsFound is returned by a run that completed but found
	// violations, so the CLI can exit non-zero.
	ErrViolationsFound = zerr.New("violations found")
)
