package app

import (
	"context"

	"github.com/wahlandcase/railway/internal/config"
	"github.com/wahlandcase/railway/internal/git"
	"github.com/wahlandcase/railway/internal/graph"
	"github.com/wahlandcase/railway/internal/models"
	"github.com/wahlandcase/railway/internal/render"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options wires the model to an opened repository
type Options struct {
	Config *config.Config
	Repo   *git.Repo
	Runner *git.Runner
	// Validator checks the git environment in the background, nil to skip
	Validator *git.Validator
	// Watcher triggers reloads on repository changes, nil to disable
	Watcher *git.Watcher
	// MainBranches overrides the configured mainline candidates
	MainBranches []string
	// MaxCommits overrides the configured commit limit when > 0
	MaxCommits int
}

// Model is the main application state
type Model struct {
	ctx          context.Context
	config       *config.Config
	repo         *git.Repo
	runner       *git.Runner
	validator    *git.Validator
	watcher      *git.Watcher
	mainBranches []string
	maxCommits   int

	// Repository state, replaced wholesale on every load
	info     models.RepoInfo
	tracking models.Tracking
	sync     map[string]graph.SyncStatus
	graph    *graph.CommitGraph
	layout   *graph.Layout
	renderer *render.Renderer
	files    []models.StatusFile
	loaded   bool
	loading  bool

	// frame caches the rendered graph; nil when stale
	frame *render.Frame

	// Navigation
	pane        Pane
	selected    int
	offset      int
	actionIndex int
	fileIndex   int
	details     viewport.Model
	detailsFor  string

	// Dialogs
	mode             Mode
	pending          request
	confirmSelection int // 0=Yes, 1=No
	input            textinput.Model
	branchChoices    []string
	branchIndex      int
	running          bool

	// Status line
	statusMessage  string
	statusKind     string // "success", "error" or "warning"
	validationDone bool
	spinnerFrame   int

	// Window size
	width  int
	height int

	shouldQuit bool
}

// New creates a new application model
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	mainBranches := opts.MainBranches
	if len(mainBranches) == 0 {
		mainBranches = cfg.Repo.MainBranches
	}
	maxCommits := cfg.Repo.MaxCommits
	if opts.MaxCommits > 0 {
		maxCommits = opts.MaxCommits
	}

	m := Model{
		ctx:          ctx,
		config:       cfg,
		repo:         opts.Repo,
		runner:       opts.Runner,
		validator:    opts.Validator,
		watcher:      opts.Watcher,
		mainBranches: mainBranches,
		maxCommits:   maxCommits,
		selected:     -1,
		details:      viewport.New(40, 10),
		width:        120,
		height:       40,
		loading:      true,
	}
	m.validationDone = opts.Validator == nil
	m.resize()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		loadRepoCmd(m.repo, m.mainBranches, m.maxCommits),
	}
	if m.validator != nil {
		cmds = append(cmds, startValidationCmd(m.ctx, m.validator))
	}
	if m.watcher != nil {
		cmds = append(cmds, listenForChanges(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

// dryRun reports whether mutating commands are only logged
func (m Model) dryRun() bool {
	return m.runner != nil && m.runner.DryRun
}

// selectedNode returns the node of the selected row, nil without commits
func (m Model) selectedNode() *graph.Node {
	if m.layout == nil || m.selected < 0 || m.selected >= m.layout.Len() {
		return nil
	}
	return &m.layout.Nodes[m.selected]
}

func (m Model) selectedID() string {
	if n := m.selectedNode(); n != nil {
		return n.Commit.ID
	}
	return ""
}

// syncOf classifies a commit against the upstream; unknown ids are Synced
func (m Model) syncOf(id string) graph.SyncStatus {
	return m.sync[id]
}

// selectRow moves the selection, re-traces the ancestry path and drops the
// render cache. It returns the command loading the new commit's details.
func (m *Model) selectRow(i int) tea.Cmd {
	if m.layout == nil || m.layout.Len() == 0 {
		return nil
	}
	i = min(max(i, 0), m.layout.Len()-1)
	if i == m.selected && m.frame != nil {
		return nil
	}

	m.selected = i
	id := m.layout.Nodes[i].Commit.ID
	m.graph.TraceAncestry(id)
	m.frame = nil
	m.offset = render.ScrollTo(i, m.offset, m.graphHeight())
	m.refreshFrame()

	if m.repo == nil {
		return nil
	}
	return loadDetailsCmd(m.repo, id)
}

// refreshFrame rebuilds the render cache when it is stale
func (m *Model) refreshFrame() {
	if m.frame != nil || m.layout == nil || m.renderer == nil {
		return
	}
	m.frame = m.renderer.Frame(m.layout, render.FrameOptions{
		Selected:       m.selected,
		MessageWidth:   m.config.Graph.MessageWidth,
		ShowAuthor:     m.config.Graph.ShowAuthor,
		Sync:           m.syncOf,
		OnAncestryPath: m.graph.OnAncestryPath,
	})
}

// applyLoad replaces the repository state, keeping the selected commit when
// it survived the reload
func (m *Model) applyLoad(msg repoLoadedResult) tea.Cmd {
	previous := m.selectedID()

	m.info = msg.info
	m.tracking = msg.tracking
	m.sync = msg.sync
	m.files = msg.files
	m.fileIndex = min(m.fileIndex, max(len(m.files)-1, 0))

	reachable := msg.headReachable
	m.graph = graph.NewCommitGraph(msg.commits)
	m.layout = graph.Build(m.graph, graph.Options{
		MainTip: msg.mainTip,
		InCurrentBranch: func(id string) bool {
			_, ok := reachable[id]
			return ok
		},
	})
	m.renderer = render.NewRenderer(msg.info.HeadID)
	m.frame = nil
	m.loaded = true

	row := 0
	if previous != "" {
		if r, ok := m.layout.Row(previous); ok {
			row = r
		}
	}
	m.selected = -1
	if m.layout.Len() == 0 {
		m.detailsFor = ""
		m.details.SetContent("")
		return nil
	}
	return m.selectRow(row)
}

func (m *Model) setStatus(kind, message string) {
	m.statusKind = kind
	m.statusMessage = message
}

func (m *Model) reload() tea.Cmd {
	if m.repo == nil || m.loading {
		return nil
	}
	m.loading = true
	return loadRepoCmd(m.repo, m.mainBranches, m.maxCommits)
}
