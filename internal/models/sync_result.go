package models

import (
	"fmt"
	"strings"
)

// BranchSyncStatus is the result of syncing one local branch from origin
type BranchSyncStatus int

const (
	BranchCreated  BranchSyncStatus = iota // Local branch created from remote
	BranchUpdated                          // Fast-forwarded to remote
	BranchSkipped                          // Local has commits the remote lacks
	BranchFailed                           // Fetch failed
)

// BranchSyncResult is the result of syncing a single branch
type BranchSyncResult struct {
	Branch string
	Status BranchSyncStatus
	Error  string // Only for BranchFailed
}

// SyncSummary renders a one line summary of a sync-all run
func SyncSummary(results []BranchSyncResult) string {
	var created, updated, skipped int
	var failed []string
	for _, r := range results {
		switch r.Status {
		case BranchCreated:
			created++
		case BranchUpdated:
			updated++
		case BranchSkipped:
			skipped++
		case BranchFailed:
			failed = append(failed, r.Branch)
		}
	}

	var b strings.Builder
	if created > 0 {
		fmt.Fprintf(&b, "Updated %d branches (created %d new)", created+updated, created)
	} else {
		fmt.Fprintf(&b, "Updated %d branches", updated)
	}
	if skipped > 0 {
		fmt.Fprintf(&b, ", skipped %d (local changes)", skipped)
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, ", %d errors (%s)", len(failed), strings.Join(failed, ", "))
	}
	return b.String()
}
