package git

import (
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wahlandcase/railway/internal/graph"
	"github.com/wahlandcase/railway/internal/models"
)

// upstream returns the reference the current branch tracks, if any
func (r *Repo) upstream() (plumbing.ReferenceName, bool) {
	branch, err := r.CurrentBranch()
	if err != nil || branch == "" {
		return "", false
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return "", false
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", false
	}
	if b.Remote == "." {
		return b.Merge, true
	}
	return plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short()), true
}

// Tracking compares the current branch with its upstream. It returns the
// ahead/behind counts and a sync status for every commit that differs;
// commits missing from the map are Synced. Without an upstream both are
// empty.
func (r *Repo) Tracking() (models.Tracking, map[string]graph.SyncStatus, error) {
	statuses := make(map[string]graph.SyncStatus)

	name, ok := r.upstream()
	if !ok {
		return models.Tracking{}, statuses, nil
	}
	ref, err := r.repo.Reference(name, true)
	if err != nil {
		// configured but never fetched
		return models.Tracking{}, statuses, nil
	}
	headID, err := r.HeadCommitID()
	if err != nil {
		return models.Tracking{}, statuses, err
	}

	ahead, behind, err := r.divergence(plumbing.NewHash(headID), ref.Hash())
	if err != nil {
		return models.Tracking{}, statuses, err
	}

	tracking := models.Tracking{Upstream: name.Short(), Ahead: len(ahead), Behind: len(behind)}
	for _, id := range behind {
		statuses[id] = graph.RemoteOnly
	}
	localStatus := graph.LocalOnly
	if tracking.Behind > 0 {
		localStatus = graph.Diverged
	}
	for _, id := range ahead {
		statuses[id] = localStatus
	}
	return tracking, statuses, nil
}

const (
	sideLocal uint8 = 1 << iota
	sideRemote
	sideBoth = sideLocal | sideRemote
)

// divergence returns the commits only reachable from local and those only
// reachable from remote. Both tips are walked together, newest committer
// time first, marking each commit with the sides that reach it; the walk
// ends once every queued commit is reachable from both, so shared history
// below the fork point is never read.
func (r *Repo) divergence(local, remote plumbing.Hash) (ahead, behind []string, err error) {
	marks := make(map[plumbing.Hash]uint8)
	queue := binaryheap.NewWith(func(a, b interface{}) int {
		ca, cb := a.(*object.Commit), b.(*object.Commit)
		if ca.Committer.When.Before(cb.Committer.When) {
			return 1
		}
		if cb.Committer.When.Before(ca.Committer.When) {
			return -1
		}
		return compareHash(ca.Hash, cb.Hash)
	})

	push := func(h plumbing.Hash, side uint8) error {
		old := marks[h]
		if old|side == old {
			return nil
		}
		marks[h] = old | side
		c, err := r.repo.CommitObject(h)
		if err == plumbing.ErrObjectNotFound {
			// shallow boundary
			return nil
		}
		if err != nil {
			return err
		}
		queue.Push(c)
		return nil
	}

	if err := push(local, sideLocal); err != nil {
		return nil, nil, err
	}
	if err := push(remote, sideRemote); err != nil {
		return nil, nil, err
	}

	for !queue.Empty() && !allShared(queue, marks) {
		v, _ := queue.Pop()
		c := v.(*object.Commit)
		side := marks[c.Hash]
		for _, p := range c.ParentHashes {
			if err := push(p, side); err != nil {
				return nil, nil, err
			}
		}
	}

	for h, side := range marks {
		switch side {
		case sideLocal:
			ahead = append(ahead, h.String())
		case sideRemote:
			behind = append(behind, h.String())
		}
	}
	return ahead, behind, nil
}

func allShared(queue *binaryheap.Heap, marks map[plumbing.Hash]uint8) bool {
	for _, v := range queue.Values() {
		if marks[v.(*object.Commit).Hash] != sideBoth {
			return false
		}
	}
	return true
}

func compareHash(a, b plumbing.Hash) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
