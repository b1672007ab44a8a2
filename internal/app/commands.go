package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/wahlandcase/railway/internal/git"
	"github.com/wahlandcase/railway/internal/graph"
	"github.com/wahlandcase/railway/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type repoLoadedResult struct {
	info    models.RepoInfo
	commits []graph.Commit
	// mainTip seeds lane 0, empty to use the newest commit
	mainTip string
	// headReachable holds the commits in the checked out branch's history
	headReachable map[string]struct{}
	tracking      models.Tracking
	sync          map[string]graph.SyncStatus
	files         []models.StatusFile
	err           error
}

type detailsLoadedResult struct {
	id      string
	details models.CommitDetails
	err     error
}

type fileDiffResult struct {
	path string
	diff string
	err  error
}

type commandResult struct {
	req     request
	outcome models.Outcome
}

// repoChangedMsg is sent when the watcher sees refs or HEAD move
type repoChangedMsg struct{}

// tickMsg drives the spinner and polls background validation
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadRepoCmd reads everything a reload replaces
func loadRepoCmd(repo *git.Repo, mainBranches []string, maxCommits int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		info := repo.Info(mainBranches)

		commits, err := repo.LoadCommits(maxCommits)
		if err != nil {
			return repoLoadedResult{err: err}
		}

		result := repoLoadedResult{info: info, commits: commits}

		if info.MainBranch != "" {
			if tip, err := repo.ResolveReference(info.MainBranch); err == nil {
				result.mainTip = tip
			} else if tip, err := repo.ResolveReference("origin/" + info.MainBranch); err == nil {
				result.mainTip = tip
			}
		}

		// The newest maxCommits from HEAD cover every loaded commit HEAD reaches
		result.headReachable, err = repo.Reachable(info.HeadID, maxCommits)
		if err != nil {
			slog.Warn("could not walk HEAD", "error", err)
			result.headReachable = map[string]struct{}{}
		}

		result.tracking, result.sync, err = repo.Tracking()
		if err != nil {
			slog.Warn("could not compare with upstream", "error", err)
		}

		result.files, err = repo.Status()
		if err != nil {
			slog.Warn("could not read status", "error", err)
		}

		slog.Debug("repository loaded", "commits", len(commits), "elapsed", time.Since(start))
		return result
	}
}

func loadDetailsCmd(repo *git.Repo, id string) tea.Cmd {
	return func() tea.Msg {
		details, err := repo.Details(id)
		return detailsLoadedResult{id: id, details: details, err: err}
	}
}

func fileDiffCmd(ctx context.Context, runner *git.Runner, file models.StatusFile) tea.Cmd {
	return func() tea.Msg {
		diff, err := runner.FileDiff(ctx, file)
		return fileDiffResult{path: file.Path, diff: diff, err: err}
	}
}

func runCommandCmd(ctx context.Context, runner *git.Runner, repo *git.Repo, req request) tea.Cmd {
	return func() tea.Msg {
		return commandResult{req: req, outcome: execute(ctx, runner, repo, req)}
	}
}

// startValidationCmd kicks off the environment checks; results are polled on tick
func startValidationCmd(ctx context.Context, v *git.Validator) tea.Cmd {
	return func() tea.Msg {
		v.Start(ctx)
		return nil
	}
}

// listenForChanges waits for the next settled burst of repository changes
func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		_, ok := <-ch
		if !ok {
			return nil
		}
		return repoChangedMsg{}
	}
}
