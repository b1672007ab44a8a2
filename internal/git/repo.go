package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wahlandcase/railway/internal/models"
)

// Repo wraps an opened repository. Reads go through go-git; anything that
// changes the repository goes through Runner.
type Repo struct {
	repo *git.Repository
	path string
}

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Open opens the repository containing path, walking up to find its root
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	root := abs
	for !IsGitRepo(root) {
		parent := filepath.Dir(root)
		if parent == root {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		root = parent
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", root, err)
	}
	return &Repo{repo: repo, path: root}, nil
}

// OpenCurrent opens the repository containing the working directory
func OpenCurrent() (*Repo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Open(cwd)
}

// Path returns the repository root
func (r *Repo) Path() string {
	return r.path
}

// GitDir returns the .git directory
func (r *Repo) GitDir() string {
	return filepath.Join(r.path, ".git")
}

// Info gathers the repository facts shown in the header
func (r *Repo) Info(mainCandidates []string) models.RepoInfo {
	info := models.NewRepoInfo(r.path, filepath.Base(r.path), r.DetectMainBranch(mainCandidates))

	if branch, err := r.CurrentBranch(); err == nil {
		info.CurrentBranch = branch
	}
	if id, err := r.HeadCommitID(); err == nil {
		info.HeadID = id
	}
	if cfg, err := r.repo.ConfigScoped(config.GlobalScope); err == nil {
		info.UserName = cfg.User.Name
		info.UserEmail = cfg.User.Email
	}
	if remote, err := r.repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		info.RemoteURL = remote.Config().URLs[0]
	}

	return info
}

// DetectMainBranch returns the first candidate that exists as a local
// branch, then the first that exists on origin. Empty when none exist.
func (r *Repo) DetectMainBranch(candidates []string) string {
	local := make(map[string]bool)
	remote := make(map[string]bool)

	refs, err := r.repo.References()
	if err != nil {
		return ""
	}
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			local[name.Short()] = true
		case name.IsRemote():
			remote[strings.TrimPrefix(name.Short(), "origin/")] = true
		}
		return nil
	})

	for _, c := range candidates {
		if local[c] {
			return c
		}
	}
	for _, c := range candidates {
		if remote[c] {
			return c
		}
	}
	return ""
}

// ResolveReference resolves a branch, tag or revision to a full commit id
func (r *Repo) ResolveReference(name string) (string, error) {
	if name == "" {
		return "", &ReferenceNotFoundError{Name: name}
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return "", &ReferenceNotFoundError{Name: name}
	}
	return hash.String(), nil
}

// HeadCommitID returns the id of the checked out commit
func (r *Repo) HeadCommitID() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", &ReferenceNotFoundError{Name: "HEAD"}
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", &ReferenceNotFoundError{Name: "HEAD"}
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// LocalBranches returns every local branch name with the commit it points at
func (r *Repo) LocalBranches() (map[string]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, err
	}
	branches := make(map[string]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches[ref.Name().Short()] = ref.Hash().String()
		return nil
	})
	return branches, err
}

// BranchesAt returns the local branches pointing at id, main branches first
func (r *Repo) BranchesAt(id string) ([]string, error) {
	branches, err := r.LocalBranches()
	if err != nil {
		return nil, err
	}
	var names []string
	for name, target := range branches {
		if target == id {
			names = append(names, name)
		}
	}
	sortMainFirst(names)
	return names, nil
}

// BranchFor names the branch a commit belongs to: a branch pointing at it,
// else a branch containing it. Returns "" when no local branch has it.
func (r *Repo) BranchFor(id string) (string, error) {
	at, err := r.BranchesAt(id)
	if err != nil {
		return "", err
	}
	if len(at) > 0 {
		return at[0], nil
	}

	target, err := r.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return "", &ReferenceNotFoundError{Name: id}
	}

	branches, err := r.LocalBranches()
	if err != nil {
		return "", err
	}
	var containing []string
	for name, tip := range branches {
		tipCommit, err := r.repo.CommitObject(plumbing.NewHash(tip))
		if err != nil {
			continue
		}
		if ok, err := target.IsAncestor(tipCommit); err == nil && ok {
			containing = append(containing, name)
		}
	}
	if len(containing) == 0 {
		return "", nil
	}
	sortMainFirst(containing)
	return containing[0], nil
}

// commit loads a commit object by full id
func (r *Repo) commit(id string) (*object.Commit, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &ReferenceNotFoundError{Name: id}
		}
		return nil, err
	}
	return c, nil
}

// sortMainFirst orders master and main before other names, then by name
func sortMainFirst(names []string) {
	priority := func(n string) int {
		if n == "master" || n == "main" {
			return 0
		}
		return 1
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := priority(names[i]), priority(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
}
