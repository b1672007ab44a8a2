package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/wahlandcase/railway/internal/models"
)

// Runner invokes the git CLI for everything that changes the repository or
// talks to a remote, so hooks, credentials and the SSH agent behave as they
// do in a shell.
type Runner struct {
	// Dir is the repository root the commands run in
	Dir string
	// DryRun logs mutating commands instead of running them
	DryRun bool
}

// NewRunner creates a Runner for the repository at dir
func NewRunner(dir string, dryRun bool) *Runner {
	return &Runner{Dir: dir, DryRun: dryRun}
}

// query runs a read-only git command and returns its trimmed output
func (r *Runner) query(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", fmt.Errorf("run git: %w", err)
		}
		return "", newGitError(args, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// run executes a mutating git command, or only logs it in dry-run mode
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	if r.DryRun {
		slog.Info("dry run", "command", "git "+strings.Join(args, " "))
		return "", nil
	}
	slog.Debug("running git", "args", args)

	output, err := r.query(ctx, args...)
	if err != nil {
		slog.Warn("git command failed", "args", args, "error", err)
	}
	return output, err
}

// Checkout checks out a branch or commit
func (r *Runner) Checkout(ctx context.Context, ref string) error {
	_, err := r.run(ctx, "checkout", ref)
	return err
}

// CreateBranch creates a branch at a commit without switching to it
func (r *Runner) CreateBranch(ctx context.Context, name, at string) error {
	_, err := r.run(ctx, "branch", name, at)
	return err
}

// DeleteBranch force deletes a local branch
func (r *Runner) DeleteBranch(ctx context.Context, name string) error {
	_, err := r.run(ctx, "branch", "-D", name)
	return err
}

// ResetMode selects how much of the working state a reset discards
type ResetMode string

const (
	ResetMixed ResetMode = "--mixed"
	ResetSoft  ResetMode = "--soft"
	ResetHard  ResetMode = "--hard"
)

// Reset moves HEAD to id
func (r *Runner) Reset(ctx context.Context, mode ResetMode, id string) error {
	_, err := r.run(ctx, "reset", string(mode), id)
	return err
}

// CherryPick applies a commit on top of HEAD
func (r *Runner) CherryPick(ctx context.Context, id string) error {
	_, err := r.run(ctx, "cherry-pick", id)
	return err
}

// Revert creates a commit undoing id
func (r *Runner) Revert(ctx context.Context, id string) error {
	_, err := r.run(ctx, "revert", "--no-edit", id)
	return err
}

// Rebase replays the current branch onto id
func (r *Runner) Rebase(ctx context.Context, id string) error {
	_, err := r.run(ctx, "rebase", id)
	return err
}

// Merge merges id into the current branch
func (r *Runner) Merge(ctx context.Context, id string) error {
	_, err := r.run(ctx, "merge", "--no-edit", id)
	return err
}

// AddAll stages every change
func (r *Runner) AddAll(ctx context.Context) error {
	_, err := r.run(ctx, "add", "-A")
	return err
}

// Commit records the staged changes
func (r *Runner) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch, turning the usual rejections into advice
func (r *Runner) Push(ctx context.Context) error {
	_, err := r.run(ctx, "push")
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return explainPushError(gitErr)
	}
	return err
}

func explainPushError(err *GitError) error {
	out := err.Output
	switch {
	case strings.Contains(out, "rejected") && strings.Contains(out, "fetch first"):
		return fmt.Errorf("push rejected: the remote has changes you don't have locally, pull first: %w", err)
	case strings.Contains(out, "non-fast-forward"):
		return fmt.Errorf("push rejected: non-fast-forward update, pull first: %w", err)
	case strings.Contains(out, "no upstream branch") || strings.Contains(out, "has no upstream"):
		return fmt.Errorf("push failed: no upstream branch, use 'git push -u origin <branch>': %w", err)
	case strings.Contains(out, "Authentication failed") || strings.Contains(out, "Could not read from remote"):
		return fmt.Errorf("push failed: check your credentials or SSH keys: %w", err)
	default:
		return err
	}
}

// Pull pulls the current branch
func (r *Runner) Pull(ctx context.Context) error {
	_, err := r.run(ctx, "pull")
	return err
}

// SetConfig writes a repository-local config value
func (r *Runner) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.run(ctx, "config", key, value)
	return err
}

// SyncAll fetches every remote and fast-forwards (or creates) a local branch
// for each branch on origin without touching the working tree.
func (r *Runner) SyncAll(ctx context.Context) ([]models.BranchSyncResult, error) {
	if _, err := r.run(ctx, "fetch", "--all"); err != nil {
		return nil, err
	}

	remoteOut, err := r.query(ctx, "branch", "-r", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	localOut, err := r.query(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	local := make(map[string]bool)
	for _, name := range strings.Fields(localOut) {
		local[name] = true
	}

	var results []models.BranchSyncResult
	for _, remote := range strings.Fields(remoteOut) {
		branch, ok := strings.CutPrefix(remote, "origin/")
		if !ok || branch == "HEAD" || branch == "" {
			continue
		}
		results = append(results, r.syncBranch(ctx, branch, local[branch]))
	}
	return results, nil
}

func (r *Runner) syncBranch(ctx context.Context, branch string, exists bool) models.BranchSyncResult {
	result := models.BranchSyncResult{Branch: branch, Status: models.BranchUpdated}
	if !exists {
		result.Status = models.BranchCreated
	}

	_, err := r.run(ctx, "fetch", "origin", branch+":"+branch)
	if err == nil {
		return result
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) &&
		(strings.Contains(gitErr.Output, "non-fast-forward") || strings.Contains(gitErr.Output, "would clobber")) {
		result.Status = models.BranchSkipped
		return result
	}
	result.Status = models.BranchFailed
	result.Error = err.Error()
	return result
}

// FileDiff returns the diff of one working tree path
func (r *Runner) FileDiff(ctx context.Context, file models.StatusFile) (string, error) {
	switch file.Status {
	case models.Staged:
		return r.query(ctx, "diff", "--cached", "--", file.Path)
	case models.Untracked:
		// exits 1 whenever there is a difference
		out, err := r.query(ctx, "diff", "--no-index", "--", "/dev/null", file.Path)
		var gitErr *GitError
		if errors.As(err, &gitErr) && strings.HasPrefix(gitErr.Output, "diff --git") {
			return gitErr.Output, nil
		}
		return out, err
	default:
		return r.query(ctx, "diff", "--", file.Path)
	}
}

// Version returns the output of git --version
func (r *Runner) Version(ctx context.Context) (string, error) {
	return r.query(ctx, "--version")
}
