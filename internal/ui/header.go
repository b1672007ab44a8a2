package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo is what the title bar shows
type HeaderInfo struct {
	Repo       string
	Branch     string // empty when detached
	MainBranch string
	// Tracking is the upstream summary, e.g. "origin/main ↑2 ↓1"
	Tracking string
	DryRun   bool
}

// RenderHeader returns the one line title bar
func RenderHeader(h HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)
	repoStyle := lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	branchStyle := lipgloss.NewStyle().Foreground(BranchColor(h.Branch, h.MainBranch)).Bold(true)

	branch := h.Branch
	if branch == "" {
		branch = "HEAD (detached)"
	}

	parts := []string{
		titleStyle.Render("railway"),
		repoStyle.Render(h.Repo),
		"on " + branchStyle.Render(branch),
	}
	if h.Tracking != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorBlue).Render(h.Tracking))
	}
	if h.DryRun {
		warningStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
		parts = append(parts, warningStyle.Render("⚠ DRY RUN MODE"))
	}

	return " " + strings.Join(parts, sepStyle.Render(" │ "))
}
