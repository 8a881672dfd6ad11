// Package git reads pending changes from and writes commits to a local
// repository by shelling out to the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BonnardValentin/commit-sage/internal/erruser"
)

// ErrNoChanges indicates the working tree has nothing to commit.
var ErrNoChanges = errors.New("no changes to commit")

// Repo is a handle to one local repository. Zero value is not valid; use Open.
type Repo struct {
	root             string
	includeUntracked bool
}

// Open resolves the repository containing path. includeUntracked controls
// whether untracked files count as changes and appear in diffs.
func Open(ctx context.Context, path string, includeUntracked bool) (*Repo, error) {
	out, err := runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, erruser.New("This directory is not inside a Git repository.", err)
	}
	root, err := filepath.Abs(strings.TrimSpace(out))
	if err != nil {
		return nil, fmt.Errorf("git: resolve root: %w", err)
	}
	return &Repo{root: root, includeUntracked: includeUntracked}, nil
}

// Root returns the absolute repository root.
func (r *Repo) Root() string { return r.root }

// HasChanges reports whether anything is pending: staged, unstaged, or (when
// enabled) untracked.
func (r *Repo) HasChanges(ctx context.Context) (bool, error) {
	args := []string{"status", "--porcelain"}
	if !r.includeUntracked {
		args = append(args, "--untracked-files=no")
	}
	out, err := runGit(ctx, r.root, args...)
	if err != nil {
		return false, erruser.New("Could not check working tree status.", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// IsInitialCommit reports whether the repository has no commits yet (unborn
// HEAD).
func (r *Repo) IsInitialCommit(ctx context.Context) (bool, error) {
	_, err := runGit(ctx, r.root, "rev-parse", "--verify", "HEAD")
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return true, nil
	}
	return false, erruser.New("Could not inspect repository history.", err)
}

// Diff returns the unified diff of all pending changes. On an unborn branch
// everything is staged and diffed against the empty tree; otherwise the diff
// covers index and working tree relative to HEAD. With untracked inclusion
// enabled, untracked files are added to the index as intent-to-add first so
// their content appears as new-file hunks. Returns ErrNoChanges when the
// resulting diff is empty.
func (r *Repo) Diff(ctx context.Context) (string, error) {
	initial, err := r.IsInitialCommit(ctx)
	if err != nil {
		return "", err
	}

	var out string
	if initial {
		if err := r.StageAll(ctx); err != nil {
			return "", err
		}
		out, err = runGit(ctx, r.root, "diff", "--cached", "--no-color", "--no-ext-diff")
	} else {
		if r.includeUntracked {
			if _, err := runGit(ctx, r.root, "add", "--intent-to-add", "--all"); err != nil {
				return "", erruser.New("Could not register untracked files for diffing.", err)
			}
		}
		out, err = runGit(ctx, r.root, "diff", "--no-color", "--no-ext-diff", "HEAD")
	}
	if err != nil {
		return "", erruser.New("Could not read the pending diff.", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrNoChanges
	}
	return out, nil
}

// StageAll stages every change, including deletions and untracked files.
func (r *Repo) StageAll(ctx context.Context) error {
	if _, err := runGit(ctx, r.root, "add", "--all"); err != nil {
		return erruser.New("Could not stage changes.", err)
	}
	return nil
}

// Commit stages all pending changes and records a commit with the given
// message. The caller's git identity (user.name, user.email) is used.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if err := r.StageAll(ctx); err != nil {
		return err
	}
	if _, err := runGit(ctx, r.root, "commit", "-m", message); err != nil {
		return erruser.New("Could not create the commit.", err)
	}
	return nil
}

// runGit executes git with the full process environment: commit and config
// lookups need HOME and the user's gitconfig. Terminal prompts are disabled
// so a missing credential fails instead of hanging.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
