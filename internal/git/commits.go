package git

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/wahlandcase/railway/internal/graph"
	"github.com/wahlandcase/railway/internal/models"
)

const shortIDLength = 7

// LoadCommits reads commits reachable from every branch, remote branch, tag
// and HEAD, newest first by commit time. limit <= 0 loads everything. An
// empty repository yields no commits and no error.
func (r *Repo) LoadCommits(limit int) ([]graph.Commit, error) {
	start := time.Now()

	iter, err := r.repo.Log(&git.LogOptions{All: true, Order: git.LogOrderCommitterTime})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	var commits []graph.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		commits = append(commits, toGraphCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk commits: %w", err)
	}

	slog.Debug("loaded commits", "count", len(commits), "elapsed", time.Since(start))
	return commits, nil
}

func toGraphCommit(c *object.Commit) graph.Commit {
	id := c.Hash.String()
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return graph.Commit{
		ID:        id,
		ShortID:   id[:shortIDLength],
		Parents:   parents,
		Message:   c.Message,
		Author:    c.Author.Name,
		Timestamp: c.Committer.When.Unix(),
	}
}

// Reachable returns the ids of up to limit commits reachable from id, newest
// first. limit <= 0 walks the whole history.
func (r *Repo) Reachable(id string, limit int) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	if id == "" {
		return seen, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: plumbing.NewHash(id), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", id, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(seen) >= limit {
			return storer.ErrStop
		}
		seen[c.Hash.String()] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", id, err)
	}
	return seen, nil
}

// Details loads what the details pane shows for a commit, patch included
func (r *Repo) Details(id string) (models.CommitDetails, error) {
	c, err := r.commit(id)
	if err != nil {
		return models.CommitDetails{}, err
	}

	details := models.NewCommitDetails(id, c.Author.Name, c.Author.Email, c.Author.When, c.Message)
	for _, p := range c.ParentHashes {
		details.Parents = append(details.Parents, p.String()[:shortIDLength])
	}

	if branches, err := r.BranchesAt(id); err == nil {
		details.Branches = branches
	}

	patch, err := r.patch(c)
	if err != nil {
		slog.Warn("could not build patch", "commit", id, "error", err)
	} else {
		details.Patch = patch
	}

	return details, nil
}

// patch diffs a commit against its first parent, or against the empty
// tree for a root commit.
func (r *Repo) patch(c *object.Commit) (string, error) {
	tree, err := c.Tree()
	if err != nil {
		return "", err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return "", err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return "", err
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", err
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", err
	}
	return patch.String(), nil
}
