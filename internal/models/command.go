package models

import "fmt"

// Command is an action offered in the actions pane
type Command int

const (
	Checkout Command = iota
	CreateBranch
	DeleteBranch
	Reset
	ResetSoft
	ResetHard
	CherryPick
	Revert
	Rebase
	Merge
	Add
	Commit
	Push
	Pull
	PullAll
	SetUserName
	SetUserEmail
)

// AllCommands is the order commands are listed in
var AllCommands = []Command{
	Checkout, CreateBranch, DeleteBranch,
	Reset, ResetSoft, ResetHard,
	CherryPick, Revert, Rebase, Merge,
	Add, Commit, Push, Pull, PullAll,
	SetUserName, SetUserEmail,
}

// Description returns the label shown in the actions pane
func (c Command) Description() string {
	switch c {
	case Checkout:
		return "checkout"
	case CreateBranch:
		return "create branch"
	case DeleteBranch:
		return "force delete branch"
	case Reset:
		return "reset --mixed"
	case ResetSoft:
		return "reset --soft"
	case ResetHard:
		return "reset --hard"
	case CherryPick:
		return "cherry-pick"
	case Revert:
		return "revert"
	case Rebase:
		return "rebase"
	case Merge:
		return "merge"
	case Add:
		return "add -A"
	case Commit:
		return "commit"
	case Push:
		return "push"
	case Pull:
		return "pull"
	case PullAll:
		return "fetch and sync all branches"
	case SetUserName:
		return "config user.name"
	case SetUserEmail:
		return "config user.email"
	default:
		return ""
	}
}

// TargetsCommit reports whether the command acts on the selected commit
func (c Command) TargetsCommit() bool {
	switch c {
	case Checkout, CreateBranch, DeleteBranch, Reset, ResetSoft, ResetHard,
		CherryPick, Revert, Rebase, Merge:
		return true
	default:
		return false
	}
}

// NeedsConfirmation reports whether the command asks before running
func (c Command) NeedsConfirmation() bool {
	switch c {
	case Checkout, Reset, ResetSoft, ResetHard, Rebase, Merge, CherryPick, Revert, Push, DeleteBranch:
		return true
	default:
		return false
	}
}

// ConfirmTarget names the pieces of a confirmation prompt
type ConfirmTarget struct {
	// Source describes the selected commit, e.g. "feature (abc1234)"
	Source string
	// Current is the checked out branch
	Current string
	// OffBranch is set when the selected commit is not in the current
	// branch's history
	OffBranch bool
}

// ConfirmationMessage builds the prompt shown before running the command
func (c Command) ConfirmationMessage(t ConfirmTarget) string {
	orphan := ""
	if t.OffBranch {
		orphan = "\n\nWARNING: this commit is not on your current branch's history.\nResetting here will orphan your branch's commits."
	}

	switch c {
	case Checkout:
		return fmt.Sprintf("Checkout %s?\n\nThis updates your working directory to match this commit.\nYou may end up in detached HEAD state if it is not a branch tip.", t.Source)
	case Reset:
		return fmt.Sprintf("Reset %s to %s?\n\nHEAD moves to this commit and all changes are unstaged.\nYour working directory files are kept.%s", t.Current, t.Source, orphan)
	case ResetSoft:
		return fmt.Sprintf("Soft reset %s to %s?\n\nHEAD moves to this commit and all changes stay staged.%s", t.Current, t.Source, orphan)
	case ResetHard:
		return fmt.Sprintf("HARD RESET %s to %s?\n\nAll staged and working directory changes are DISCARDED.\nTHIS CANNOT BE UNDONE!%s", t.Current, t.Source, orphan)
	case Merge:
		return fmt.Sprintf("Merge %s into %s?\n\nThis creates a merge commit on your current branch.", t.Source, t.Current)
	case Rebase:
		return fmt.Sprintf("Rebase %s onto %s?\n\nYour current branch's commits are replayed on top of %s.", t.Current, t.Source, t.Source)
	case CherryPick:
		return fmt.Sprintf("Cherry-pick %s onto %s?\n\nThe changes from this commit are applied as a new commit.", t.Source, t.Current)
	case Revert:
		return fmt.Sprintf("Revert %s on %s?\n\nA new commit undoes the changes from this commit.", t.Source, t.Current)
	case Push:
		return "Push changes to the remote repository. Continue?"
	case DeleteBranch:
		return fmt.Sprintf("Force delete branch %s? This may orphan commits.", t.Source)
	default:
		return "Are you sure?"
	}
}

// NeedsInput reports whether the command asks for a value before running
func (c Command) NeedsInput() bool {
	switch c {
	case CreateBranch, Commit, SetUserName, SetUserEmail:
		return true
	default:
		return false
	}
}

// InputPrompt returns the label of the value a NeedsInput command asks for
func (c Command) InputPrompt() string {
	switch c {
	case CreateBranch:
		return "Branch name"
	case Commit:
		return "Commit message"
	case SetUserName:
		return "User name"
	case SetUserEmail:
		return "User email"
	default:
		return ""
	}
}
