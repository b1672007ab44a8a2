package app

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/railway/internal/models"
	"github.com/wahlandcase/railway/internal/render"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.selected >= 0 {
			m.offset = render.ScrollTo(m.selected, m.offset, m.graphHeight())
		}
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10
		m.pollValidation()
		return m, tickCmd()

	// Task result messages
	case repoLoadedResult:
		m.loading = false
		if msg.err != nil {
			m.setStatus("error", "Failed to load commits: "+msg.err.Error())
			return m, nil
		}
		cmd := m.applyLoad(msg)
		return m, cmd

	case detailsLoadedResult:
		return m.handleDetailsLoaded(msg)

	case fileDiffResult:
		if msg.err != nil {
			m.setStatus("error", msg.err.Error())
			return m, nil
		}
		m.detailsFor = "file:" + msg.path
		m.details.SetContent(msg.diff)
		m.details.GotoTop()
		return m, nil

	case commandResult:
		return m.handleCommandResult(msg)

	case repoChangedMsg:
		cmds := []tea.Cmd{listenForChanges(m.watcher.Changes())}
		if !m.running {
			cmds = append(cmds, m.reload())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *Model) pollValidation() {
	if m.validationDone || m.validator == nil {
		return
	}
	result, ok := m.validator.Result()
	if !ok {
		return
	}
	m.validationDone = true
	if result.HasIssues() {
		m.setStatus("warning", strings.ReplaceAll(result.Summary(), "\n", " "))
	}
}

func (m Model) handleDetailsLoaded(msg detailsLoadedResult) (tea.Model, tea.Cmd) {
	// A late result for a commit that is no longer selected
	if msg.id != m.selectedID() {
		return m, nil
	}
	if msg.err != nil {
		m.setStatus("error", msg.err.Error())
		return m, nil
	}
	m.detailsFor = msg.id
	m.details.SetContent(formatDetails(msg.details))
	m.details.GotoTop()
	return m, nil
}

func (m Model) handleCommandResult(msg commandResult) (tea.Model, tea.Cmd) {
	m.running = false

	if commitID, branches, ok := models.BranchChoice(msg.outcome); ok {
		m.pending = msg.req
		m.pending.commitID = commitID
		m.branchChoices = branches
		m.branchIndex = 0
		m.mode = ModeBranchSelect
		return m, nil
	}

	text := models.OutcomeText(msg.outcome)
	if models.IsFailed(msg.outcome) {
		m.setStatus("error", msg.req.command.Description()+" failed: "+text)
		return m, nil
	}

	if m.dryRun() {
		text = "(dry run) " + text
	}
	m.setStatus("success", text)
	cmd := m.reload()
	return m, cmd
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeInput:
		return m.handleInputKey(msg)
	case ModeBranchSelect:
		return m.handleBranchSelectKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "tab":
		m.pane = m.pane.next()
		return m, nil
	case "shift+tab":
		m.pane = m.pane.prev()
		return m, nil
	case "r":
		m.setStatus("", "")
		cmd := m.reload()
		return m, cmd
	}

	switch m.pane {
	case PaneGraph:
		return m.handleGraphKey(msg)
	case PaneActions:
		return m.handleActionsKey(msg)
	case PaneStatus:
		return m.handleStatusKey(msg)
	case PaneDetails:
		return m.handleDetailsKey(msg)
	}
	return m, nil
}

func (m Model) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.layout == nil || m.layout.Len() == 0 {
		return m, nil
	}

	page := max(m.graphHeight()/4, 1)
	target := m.selected
	switch msg.String() {
	case "down", "j":
		target++
	case "up", "k":
		target--
	case "g", "home":
		target = 0
	case "G", "end":
		target = m.layout.Len() - 1
	case "pgdown", "ctrl+d":
		target += page
	case "pgup", "ctrl+u":
		target -= page
	case "enter":
		m.pane = PaneActions
		return m, nil
	default:
		return m, nil
	}

	cmd := m.selectRow(target)
	return m, cmd
}

func (m Model) handleActionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(models.AllCommands) - 1
	switch msg.String() {
	case "down", "j":
		if m.actionIndex < last {
			m.actionIndex++
		} else {
			m.actionIndex = 0 // Wrap to top
		}
	case "up", "k":
		if m.actionIndex > 0 {
			m.actionIndex--
		} else {
			m.actionIndex = last // Wrap to bottom
		}
	case "g", "home":
		m.actionIndex = 0
	case "G", "end":
		m.actionIndex = last
	case "enter":
		return m.startCommand(models.AllCommands[m.actionIndex])
	case "esc":
		m.pane = PaneGraph
	}
	return m, nil
}

func (m Model) handleStatusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.files) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "down", "j":
		m.fileIndex = min(m.fileIndex+1, len(m.files)-1)
	case "up", "k":
		m.fileIndex = max(m.fileIndex-1, 0)
	case "g", "home":
		m.fileIndex = 0
	case "G", "end":
		m.fileIndex = len(m.files) - 1
	case "enter":
		if m.runner == nil {
			return m, nil
		}
		return m, fileDiffCmd(m.ctx, m.runner, m.files[m.fileIndex])
	case "esc":
		m.pane = PaneGraph
	}
	return m, nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.details.LineDown(1)
	case "up", "k":
		m.details.LineUp(1)
	case "pgdown", "ctrl+d":
		m.details.HalfPageDown()
	case "pgup", "ctrl+u":
		m.details.HalfPageUp()
	case "g", "home":
		m.details.GotoTop()
	case "G", "end":
		m.details.GotoBottom()
	case "esc":
		m.pane = PaneGraph
	}
	return m, nil
}

// startCommand opens whatever dialog a command needs, or runs it directly
func (m Model) startCommand(cmd models.Command) (tea.Model, tea.Cmd) {
	if m.running {
		m.setStatus("warning", "A command is already running")
		return m, nil
	}

	req := request{command: cmd}
	if cmd.TargetsCommit() {
		req.commitID = m.selectedID()
		if req.commitID == "" {
			m.setStatus("error", "No commit selected")
			return m, nil
		}
	}
	m.pending = req

	switch {
	case cmd.NeedsInput():
		m.input = newInput(cmd)
		m.mode = ModeInput
		return m, textinput.Blink
	case cmd.NeedsConfirmation():
		m.confirmSelection = 1 // Default to No
		m.mode = ModeConfirm
		return m, nil
	}
	return m.run(req)
}

func newInput(cmd models.Command) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = cmd.InputPrompt()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()
	return ti
}

func (m Model) run(req request) (tea.Model, tea.Cmd) {
	if m.runner == nil || m.repo == nil {
		m.mode = ModeNormal
		return m, nil
	}
	m.mode = ModeNormal
	m.running = true
	m.setStatus("", "Running "+req.command.Description()+"...")
	return m, runCommandCmd(m.ctx, m.runner, m.repo, req)
}

// confirmTarget describes the pending command's commit for the prompt
func (m Model) confirmTarget() models.ConfirmTarget {
	target := models.ConfirmTarget{
		Source:  shortID(m.pending.commitID),
		Current: m.info.BranchLabel(),
	}
	if m.pending.branch != "" {
		target.Source = fmt.Sprintf("%s (%s)", m.pending.branch, shortID(m.pending.commitID))
	}
	if n := m.selectedNode(); n != nil && n.Commit.ID == m.pending.commitID {
		target.OffBranch = !n.InCurrentBranch
		if m.pending.branch == "" {
			target.Source = shortID(n.Commit.ID) + " " + n.Commit.Subject()
		}
	}
	return target
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "right", "l", "tab":
		m.confirmSelection = 1 - m.confirmSelection
	case "y", "Y":
		return m.run(m.pending)
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.setStatus("", "Cancelled")
	case "enter":
		if m.confirmSelection == 0 {
			return m.run(m.pending)
		}
		m.mode = ModeNormal
		m.setStatus("", "Cancelled")
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		m.input.Blur()
		req := m.pending
		req.value = value
		return m.run(req)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleBranchSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.branchIndex = min(m.branchIndex+1, len(m.branchChoices)-1)
	case "up", "k":
		m.branchIndex = max(m.branchIndex-1, 0)
	case "esc", "q":
		m.mode = ModeNormal
		m.branchChoices = nil
	case "enter":
		if len(m.branchChoices) == 0 {
			m.mode = ModeNormal
			return m, nil
		}
		req := m.pending
		req.branch = m.branchChoices[m.branchIndex]
		m.branchChoices = nil
		return m.run(req)
	}
	return m, nil
}
