package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wahlandcase/railway/internal/git"
	"github.com/wahlandcase/railway/internal/models"
)

// request is a command ready to run
type request struct {
	command models.Command
	// commitID is the selected commit for commands that target one
	commitID string
	// branch is set once the user picked among several branches
	branch string
	// value is the text entered for commands that need input
	value string
}

// execute runs a request to completion. Commands that touch a commit with
// several branches pointing at it come back asking which branch to use.
func execute(ctx context.Context, runner *git.Runner, repo *git.Repo, req request) models.Outcome {
	id := req.commitID
	short := shortID(id)
	slog.Info("running command", "command", req.command.Description(), "commit", short)

	switch req.command {
	case models.Checkout:
		if req.branch != "" {
			return outcome(runner.Checkout(ctx, req.branch), "Checked out "+req.branch)
		}
		branches, err := repo.BranchesAt(id)
		if err != nil {
			return models.Failed(err.Error())
		}
		switch len(branches) {
		case 0:
			return outcome(runner.Checkout(ctx, id), "Checked out "+short+" (detached HEAD)")
		case 1:
			return outcome(runner.Checkout(ctx, branches[0]), "Checked out "+branches[0])
		default:
			return models.ChooseBranch(id, branches)
		}

	case models.CreateBranch:
		return outcome(runner.CreateBranch(ctx, req.value, id), fmt.Sprintf("Created branch %s at %s", req.value, short))

	case models.DeleteBranch:
		if req.branch != "" {
			return outcome(runner.DeleteBranch(ctx, req.branch), "Deleted branch "+req.branch)
		}
		branches, err := repo.BranchesAt(id)
		if err != nil {
			return models.Failed(err.Error())
		}
		switch len(branches) {
		case 0:
			return models.Failed("No branch points at " + short)
		case 1:
			return outcome(runner.DeleteBranch(ctx, branches[0]), "Deleted branch "+branches[0])
		default:
			return models.ChooseBranch(id, branches)
		}

	case models.Reset:
		return outcome(runner.Reset(ctx, git.ResetMixed, id), "Reset to "+short)
	case models.ResetSoft:
		return outcome(runner.Reset(ctx, git.ResetSoft, id), "Soft reset to "+short)
	case models.ResetHard:
		return outcome(runner.Reset(ctx, git.ResetHard, id), "Hard reset to "+short)
	case models.CherryPick:
		return outcome(runner.CherryPick(ctx, id), "Cherry-picked "+short)
	case models.Revert:
		return outcome(runner.Revert(ctx, id), "Reverted "+short)
	case models.Rebase:
		return outcome(runner.Rebase(ctx, id), "Rebased onto "+short)
	case models.Merge:
		return outcome(runner.Merge(ctx, id), "Merged "+short)

	case models.Add:
		return outcome(runner.AddAll(ctx), "Staged all changes")
	case models.Commit:
		return outcome(runner.Commit(ctx, req.value), "Committed")
	case models.Push:
		return outcome(runner.Push(ctx), "Pushed")
	case models.Pull:
		return outcome(runner.Pull(ctx), "Pulled")
	case models.PullAll:
		results, err := runner.SyncAll(ctx)
		if err != nil {
			return models.Failed(err.Error())
		}
		return models.Done(models.SyncSummary(results))

	case models.SetUserName:
		return outcome(runner.SetConfig(ctx, "user.name", req.value), "Set user.name to "+req.value)
	case models.SetUserEmail:
		return outcome(runner.SetConfig(ctx, "user.email", req.value), "Set user.email to "+req.value)
	}

	return models.Failed("unknown command")
}

func outcome(err error, message string) models.Outcome {
	if err != nil {
		return models.Failed(err.Error())
	}
	return models.Done(message)
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
