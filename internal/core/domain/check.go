package domain

// Violation is a single finding reported by a check.
type Violation struct {
	// File is the slash-separated path relative to the scan root.
	File string `json:"file"`
	// Line is the 1-indexed line the violation was found on, 0 when the
	// violation concerns the file as a whole.
	Line int `json:"line,omitempty"`
	// Kind tags the violation type, e.g. "file_too_large" or "todo".
	Kind string `json:"kind"`
	// Advice is free-text guidance on how to resolve the violation.
	Advice string `json:"advice"`
	// Value and Threshold carry the measured value and the configured limit
	// for threshold-style violations.
	Value     int64 `json:"value,omitempty"`
	Threshold int64 `json:"threshold,omitempty"`
}

// CheckResult is the outcome of one check for one run. It is never mutated
// after the check returns it.
type CheckResult struct {
	Name       string         `json:"name"`
	Passed     bool           `json:"passed"`
	Skipped    bool           `json:"skipped,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
	Violations []Violation    `json:"violations,omitempty"`
	Metrics    map[string]any `json:"metrics,omitempty"`
}

// PassedResult returns a passing result for the named check.
func PassedResult(name string) CheckResult {
	return CheckResult{Name: name, Passed: true}
}

// FailedResult returns a failing result carrying the given violations.
func FailedResult(name string, violations []Violation) CheckResult {
	return CheckResult{Name: name, Violations: violations}
}

// SkippedResult marks a check that could not run, with a diagnostic reason.
func SkippedResult(name, reason string) CheckResult {
	return CheckResult{Name: name, Skipped: true, SkipReason: reason}
}

// WithMetrics attaches a metrics payload and returns the result.
func (r CheckResult) WithMetrics(metrics map[string]any) CheckResult {
	r.Metrics = metrics
	return r
}
