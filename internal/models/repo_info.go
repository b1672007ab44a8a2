package models

// RepoInfo contains information about the opened repository
type RepoInfo struct {
	// Path to the repository root
	Path string
	// DisplayName is the directory name of the root
	DisplayName string
	// MainBranch name ("master" or "main"), empty when neither exists
	MainBranch string
	// CurrentBranch is the checked out branch, empty when detached
	CurrentBranch string
	// HeadID is the full id of the checked out commit
	HeadID string
	// UserName and UserEmail come from the git config, empty if unset
	UserName  string
	UserEmail string
	// RemoteURL is the url of origin, empty without one
	RemoteURL string
}

// NewRepoInfo creates a new RepoInfo
func NewRepoInfo(path, displayName, mainBranch string) RepoInfo {
	return RepoInfo{
		Path:        path,
		DisplayName: displayName,
		MainBranch:  mainBranch,
	}
}

// Detached reports whether HEAD points at a commit instead of a branch
func (r RepoInfo) Detached() bool {
	return r.CurrentBranch == ""
}

// BranchLabel is the current branch for display
func (r RepoInfo) BranchLabel() string {
	if r.Detached() {
		return "HEAD (detached)"
	}
	return r.CurrentBranch
}

// Tracking describes the current branch relative to its upstream
type Tracking struct {
	// Upstream is the short name of the upstream ref (e.g., "origin/main")
	Upstream string
	Ahead    int
	Behind   int
}

// HasUpstream reports whether the current branch tracks a remote branch
func (t Tracking) HasUpstream() bool {
	return t.Upstream != ""
}

// Diverged reports whether both sides have commits the other lacks
func (t Tracking) Diverged() bool {
	return t.Ahead > 0 && t.Behind > 0
}
