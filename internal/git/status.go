package git

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/wahlandcase/railway/internal/models"
)

// Status lists the working tree changes, sorted by path. A path that is
// both staged and modified again shows up twice.
func (r *Repo) Status() ([]models.StatusFile, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var files []models.StatusFile
	for _, path := range paths {
		fs := status[path]

		if fs.Staging == git.Untracked || fs.Worktree == git.Untracked {
			files = append(files, models.StatusFile{Path: path, Status: models.Untracked})
			continue
		}
		if fs.Staging != git.Unmodified {
			files = append(files, models.StatusFile{Path: path, Status: models.Staged})
		}
		switch fs.Worktree {
		case git.Modified:
			files = append(files, models.StatusFile{Path: path, Status: models.Modified})
		case git.Deleted:
			files = append(files, models.StatusFile{Path: path, Status: models.Deleted})
		}
	}

	return files, nil
}
