package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/railway/internal/graph"
	"github.com/wahlandcase/railway/internal/ui"
)

// Theme holds the colours used for commits, lanes and commit messages
type Theme struct {
	Synced     lipgloss.Color
	LocalOnly  lipgloss.Color
	RemoteOnly lipgloss.Color
	Diverged   lipgloss.Color
	// Foreign colours everything outside the checked out branch's history
	Foreign lipgloss.Color
	// Selected colours the message of the selected commit
	Selected lipgloss.Color
}

// DefaultTheme uses the shared ui palette
func DefaultTheme() Theme {
	return Theme{
		Synced:     ui.ColorWhite,
		LocalOnly:  ui.ColorGreen,
		RemoteOnly: ui.ColorRed,
		Diverged:   ui.ColorYellow,
		Foreign:    ui.ColorDarkGray,
		Selected:   ui.ColorCyan,
	}
}

// CommitStyle picks the style for a commit and the lines it owns. Commits
// outside the current branch are greyed out regardless of sync status.
func (t Theme) CommitStyle(sync graph.SyncStatus, notInCurrentBranch bool) lipgloss.Style {
	if notInCurrentBranch {
		return lipgloss.NewStyle().Foreground(t.Foreign)
	}

	var c lipgloss.Color
	switch sync {
	case graph.LocalOnly:
		c = t.LocalOnly
	case graph.RemoteOnly:
		c = t.RemoteOnly
	case graph.Diverged:
		c = t.Diverged
	default:
		c = t.Synced
	}
	return lipgloss.NewStyle().Foreground(c)
}

// MessageStyle styles the id and subject printed next to a node row
func (t Theme) MessageStyle(selected, notInCurrentBranch bool) lipgloss.Style {
	switch {
	case selected:
		return lipgloss.NewStyle().Foreground(t.Selected).Bold(true)
	case notInCurrentBranch:
		return lipgloss.NewStyle().Foreground(t.Foreign)
	default:
		return lipgloss.NewStyle()
	}
}
