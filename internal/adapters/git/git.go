// Package git provides the git subprocess helpers used to annotate runs.
package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"
)

// RepoRoot returns the top-level directory of the repository containing
// dir, or an error when dir is not inside a repository.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "not inside a git repository"), "dir", dir)
	}
	return out, nil
}

// HeadCommit returns the short hash of HEAD for the repository at root.
func HeadCommit(ctx context.Context, root string) (string, error) {
	out, err := run(ctx, root, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve HEAD"), "root", root)
	}
	return out, nil
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", zerr.With(zerr.Wrap(err, "git command failed"), "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", zerr.Wrap(err, "git command failed")
	}
	return strings.TrimSpace(string(out)), nil
}
