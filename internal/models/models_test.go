package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Metadata(t *testing.T) {
	for _, c := range AllCommands {
		assert.NotEmpty(t, c.Description(), "command %d", c)
	}

	assert.True(t, ResetHard.NeedsConfirmation())
	assert.True(t, Push.NeedsConfirmation())
	assert.False(t, Add.NeedsConfirmation())
	assert.False(t, CreateBranch.NeedsConfirmation())

	assert.True(t, CherryPick.TargetsCommit())
	assert.False(t, Pull.TargetsCommit())
}

func TestCommand_ConfirmationMessage(t *testing.T) {
	target := ConfirmTarget{Source: "feature (abc1234)", Current: "main"}

	msg := Merge.ConfirmationMessage(target)
	assert.Contains(t, msg, "Merge feature (abc1234) into main?")

	assert.NotContains(t, Reset.ConfirmationMessage(target), "orphan")
	target.OffBranch = true
	assert.Contains(t, ResetHard.ConfirmationMessage(target), "orphan")
	assert.Equal(t, "Are you sure?", Add.ConfirmationMessage(target))
}

func TestOutcome(t *testing.T) {
	done := Done("Checked out main")
	assert.True(t, IsDone(done))
	assert.False(t, IsFailed(done))
	assert.Equal(t, "Checked out main", OutcomeText(done))

	failed := Failed("boom")
	assert.True(t, IsFailed(failed))
	assert.Equal(t, "boom", OutcomeText(failed))

	choose := ChooseBranch("abc", []string{"a", "b"})
	id, branches, ok := BranchChoice(choose)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, []string{"a", "b"}, branches)
	assert.Empty(t, OutcomeText(choose))

	_, _, ok = BranchChoice(done)
	assert.False(t, ok)
}

func TestSyncSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []BranchSyncResult
		want    string
	}{
		{"nothing", nil, "Updated 0 branches"},
		{
			"created and skipped",
			[]BranchSyncResult{
				{Branch: "a", Status: BranchCreated},
				{Branch: "b", Status: BranchUpdated},
				{Branch: "c", Status: BranchSkipped},
			},
			"Updated 2 branches (created 1 new), skipped 1 (local changes)",
		},
		{
			"failures",
			[]BranchSyncResult{
				{Branch: "a", Status: BranchUpdated},
				{Branch: "x", Status: BranchFailed, Error: "denied"},
			},
			"Updated 1 branches, 1 errors (x)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyncSummary(tt.results))
		})
	}
}

func TestValidationResult(t *testing.T) {
	ok := ValidationResult{GitVersion: "2.43.0", VersionOK: true}
	assert.False(t, ok.HasIssues())

	old := ValidationResult{GitVersion: "2.20.1", FailedCommands: []string{"git rebase"}, Warnings: []string{"no HEAD"}}
	assert.True(t, old.HasIssues())
	assert.Equal(t,
		"Git version 2.20.1 may not be fully supported (recommend 2.23+)\n1 git command(s) failed validation:\n  - git rebase\nno HEAD",
		old.Summary())

	assert.Equal(t, "Could not detect git version", ValidationResult{}.Summary())
}

func TestRepoInfo(t *testing.T) {
	info := NewRepoInfo("/tmp/r", "r", "main")
	assert.True(t, info.Detached())
	assert.Equal(t, "HEAD (detached)", info.BranchLabel())

	info.CurrentBranch = "feature"
	assert.Equal(t, "feature", info.BranchLabel())

	assert.True(t, Tracking{Upstream: "origin/main", Ahead: 1, Behind: 2}.Diverged())
	assert.False(t, Tracking{}.HasUpstream())
	assert.Equal(t, "abcdef1", NewCommitDetails("abcdef1234", "a", "e", time.Time{}, "m").ShortID)
}

func TestCommand_Input(t *testing.T) {
	for _, c := range AllCommands {
		if c.NeedsInput() {
			assert.NotEmpty(t, c.InputPrompt(), "command %d", c)
			assert.False(t, c.NeedsConfirmation(), "command %d", c)
		} else {
			assert.Empty(t, c.InputPrompt(), "command %d", c)
		}
	}
	assert.Equal(t, "Commit message", Commit.InputPrompt())
	assert.False(t, Push.NeedsInput())
}
