package app

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/railway/internal/models"
	"github.com/wahlandcase/railway/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	headerHeight = 2 // title bar and a blank line
	footerHeight = 2 // status message and key hints
	boxChrome    = 3 // top and bottom border plus the title line
)

// bodyHeight is the height left for the panes
func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 16)
}

// graphWidth is the outer width of the graph pane
func (m Model) graphWidth() int {
	return max(m.width*3/5, 40)
}

// sideWidth is the outer width of the right hand column
func (m Model) sideWidth() int {
	return max(m.width-m.graphWidth(), 30)
}

// graphHeight is the number of graph lines visible at once
func (m Model) graphHeight() int {
	return max(m.bodyHeight()-boxChrome, 1)
}

// sideHeights splits the right hand column into content line counts
func (m Model) sideHeights() (actions, status, details int) {
	body := m.bodyHeight()
	actions = min(len(models.AllCommands), max(body/3-boxChrome, 3))
	status = max(body/5-boxChrome, 2)
	details = max(body-actions-status-3*boxChrome, 3)
	return actions, status, details
}

// resize fits the details viewport to the window
func (m *Model) resize() {
	_, _, details := m.sideHeights()
	m.details.Width = max(m.sideWidth()-2, 1)
	m.details.Height = details
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	header := ui.RenderHeader(ui.HeaderInfo{
		Repo:       m.info.DisplayName,
		Branch:     m.info.CurrentBranch,
		MainBranch: m.info.MainBranch,
		Tracking:   trackingLabel(m.tracking),
		DryRun:     m.dryRun(),
	})

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderGraphPane(), m.renderSideColumn())

	sections := []string{header, "", body, m.renderStatusLine(), m.renderStatusBar()}
	return strings.Join(sections, "\n")
}

func trackingLabel(t models.Tracking) string {
	if !t.HasUpstream() {
		return ""
	}
	label := t.Upstream
	if t.Ahead > 0 {
		label += fmt.Sprintf(" ↑%d", t.Ahead)
	}
	if t.Behind > 0 {
		label += fmt.Sprintf(" ↓%d", t.Behind)
	}
	return label
}

func (m Model) renderGraphPane() string {
	width := m.graphWidth() - 2
	height := m.graphHeight()
	dim := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)

	var content string
	switch {
	case !m.loaded:
		content = lipgloss.NewStyle().Foreground(ui.ColorYellow).Render(ui.Spinner(m.spinnerFrame)) + " Loading commits..."
	case m.layout == nil || m.layout.Len() == 0 || m.frame == nil:
		content = dim.Render("No commits found")
	default:
		rows := m.frame.Window(m.offset, height)
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = ansi.Truncate(row.String(), width, "")
		}
		content = strings.Join(lines, "\n")
	}

	title := "Graph"
	if m.layout != nil && m.layout.Len() > 0 {
		title = fmt.Sprintf("Graph (%d/%d)", m.selected+1, m.layout.Len())
	}
	return ui.ColumnBox(content, title, ui.ColorCyan, m.pane == PaneGraph, width, height+1)
}

func (m Model) renderSideColumn() string {
	actionsHeight, statusHeight, detailsHeight := m.sideHeights()
	width := m.sideWidth() - 2

	var top string
	if m.mode == ModeNormal {
		top = ui.ColumnBox(m.renderActions(actionsHeight, width), "Actions", ui.ColorOrange, m.pane == PaneActions, width, actionsHeight+1)
	} else {
		top = ui.ColumnBox(m.renderDialog(width), m.mode.String(), ui.ColorYellow, true, width, actionsHeight+1)
	}
	status := ui.ColumnBox(m.renderFiles(statusHeight, width), fmt.Sprintf("Status (%d)", len(m.files)), ui.ColorGreen, m.pane == PaneStatus, width, statusHeight+1)
	details := ui.ColumnBox(m.details.View(), "Details", ui.ColorMagenta, m.pane == PaneDetails, width, detailsHeight+1)

	return lipgloss.JoinVertical(lipgloss.Left, top, status, details)
}

// visibleRange returns the window of a list that keeps index on screen
func visibleRange(index, total, height int) (start, end int) {
	if total <= height {
		return 0, total
	}
	start = max(index-height+1, 0)
	return start, min(start+height, total)
}

func (m Model) renderActions(height, width int) string {
	start, end := visibleRange(m.actionIndex, len(models.AllCommands), height)

	var lines []string
	for i := start; i < end; i++ {
		cmd := models.AllCommands[i]
		highlighted := i == m.actionIndex && m.pane == PaneActions

		style := lipgloss.NewStyle().Foreground(ui.ColorWhite)
		if highlighted {
			style = lipgloss.NewStyle().Foreground(ui.ColorOrange).Bold(true)
		}
		label := cmd.Description()
		if cmd.NeedsConfirmation() {
			label += " …"
		}
		lines = append(lines, ansi.Truncate(ui.ArrowStyled(highlighted, ui.ColorOrange)+style.Render(label), width, ""))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFiles(height, width int) string {
	if len(m.files) == 0 {
		return lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render("Working tree clean")
	}

	start, end := visibleRange(m.fileIndex, len(m.files), height)
	var lines []string
	for i := start; i < end; i++ {
		f := m.files[i]
		highlighted := i == m.fileIndex && m.pane == PaneStatus

		_, color := ui.StatusIcon(fileStatusName(f.Status))
		symbol := lipgloss.NewStyle().Foreground(color).Bold(true).Render(f.Status.Symbol())
		line := ui.Arrow(highlighted) + symbol + " " + f.Path
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func fileStatusName(s models.FileStatus) string {
	switch s {
	case models.Staged:
		return "staged"
	case models.Modified:
		return "modified"
	case models.Untracked:
		return "untracked"
	case models.Deleted:
		return "deleted"
	default:
		return ""
	}
}

func (m Model) renderDialog(width int) string {
	switch m.mode {
	case ModeConfirm:
		msg := m.pending.command.ConfirmationMessage(m.confirmTarget())
		wrapped := lipgloss.NewStyle().Width(width).Render(msg)
		return wrapped + "\n\n" + ui.YesNoButtons(m.confirmSelection)

	case ModeInput:
		prompt := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true).Render(m.pending.command.InputPrompt())
		return prompt + "\n\n" + m.input.View()

	case ModeBranchSelect:
		var lines []string
		lines = append(lines, "Several branches point at "+shortID(m.pending.commitID)+":", "")
		for i, b := range m.branchChoices {
			style := lipgloss.NewStyle().Foreground(ui.ColorWhite)
			if i == m.branchIndex {
				style = lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
			}
			lines = append(lines, ui.ArrowStyled(i == m.branchIndex, ui.ColorYellow)+style.Render(b))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// formatDetails lays out a commit the way git show does
func formatDetails(d models.CommitDetails) string {
	label := lipgloss.NewStyle().Foreground(ui.ColorYellow)

	var b strings.Builder
	b.WriteString(label.Render("commit " + d.ID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Author:   %s <%s>\n", d.Author, d.AuthorEmail)
	fmt.Fprintf(&b, "Date:     %s\n", d.Date.Format("Mon Jan 2 15:04:05 2006 -0700"))
	if len(d.Parents) > 0 {
		fmt.Fprintf(&b, "Parents:  %s\n", strings.Join(d.Parents, " "))
	}
	if len(d.Branches) > 0 {
		fmt.Fprintf(&b, "Branches: %s\n", strings.Join(d.Branches, ", "))
	}
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(d.Message, "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}
	if d.Patch != "" {
		b.WriteString("\n" + ui.SectionHeader("Changes", ui.ColorPurple) + "\n\n")
		b.WriteString(d.Patch)
	}
	return b.String()
}

func (m Model) renderStatusLine() string {
	if m.running {
		spinner := lipgloss.NewStyle().Foreground(ui.ColorYellow).Render(ui.Spinner(m.spinnerFrame))
		return " " + spinner + " " + m.statusMessage
	}
	if m.statusMessage == "" {
		return ""
	}
	if m.statusKind == "" {
		return " " + m.statusMessage
	}
	icon, color := ui.StatusIcon(m.statusKind)
	return " " + lipgloss.NewStyle().Foreground(color).Render(icon+" "+m.statusMessage)
}

func (m Model) renderStatusBar() string {
	var hints []string

	switch m.mode {
	case ModeConfirm:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("y/n", "Quick", ui.ColorGreen),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
			ui.KeyBinding("Esc", "Cancel", ui.ColorYellow),
		}
	case ModeInput:
		hints = []string{
			ui.KeyBinding("Enter", "Submit", ui.ColorGreen),
			ui.KeyBinding("Esc", "Cancel", ui.ColorYellow),
		}
	case ModeBranchSelect:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("Enter", "Select", ui.ColorGreen),
			ui.KeyBinding("Esc", "Cancel", ui.ColorYellow),
		}
	default:
		hints = []string{
			ui.KeyBinding("↑↓/jk", "Navigate", ui.ColorWhite),
			ui.KeyBinding("g/G", "Top/Bottom", ui.ColorWhite),
			ui.KeyBinding("Tab", "Pane", ui.ColorCyan),
			ui.KeyBinding("Enter", "Select", ui.ColorGreen),
			ui.KeyBinding("r", "Refresh", ui.ColorBlue),
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	}

	return " " + strings.Join(hints, "  ")
}
