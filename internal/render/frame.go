package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wahlandcase/railway/internal/graph"
)

// FrameOptions carries the per-draw inputs that are not part of the layout
type FrameOptions struct {
	// Selected is the row of the selected commit, -1 for none
	Selected int
	// MessageWidth caps the subject printed after each node row
	MessageWidth int
	ShowAuthor   bool
	// Sync classifies commits against the upstream branch. Nil means Synced.
	Sync func(id string) graph.SyncStatus
	// OnAncestryPath marks commits drawn with heavy markers. Nil means none.
	OnAncestryPath func(id string) bool
}

// Frame is every rendered line of a layout: a node row per commit with an
// edge row between consecutive commits.
type Frame struct {
	Lines []Row
}

// NodeLine returns the line index of the node row for commit row i
func NodeLine(i int) int {
	return 2 * i
}

// Frame renders the whole layout. The result stays valid until the layout,
// the selection or the ancestry path changes.
func (r *Renderer) Frame(l *graph.Layout, opts FrameOptions) *Frame {
	if opts.MessageWidth <= 0 {
		opts.MessageWidth = 50
	}
	syncOf := func(id string) graph.SyncStatus {
		if opts.Sync == nil {
			return graph.Synced
		}
		return opts.Sync(id)
	}

	f := &Frame{Lines: make([]Row, 0, max(2*l.Len()-1, 0))}

	for i := range l.Nodes {
		n := &l.Nodes[i]
		sync := syncOf(n.Commit.ID)
		onPath := opts.OnAncestryPath != nil && opts.OnAncestryPath(n.Commit.ID)

		row := r.NodeRow(n, l.Width, l.NodeLanes(i), sync, onPath)
		row = row.append(" ", lipgloss.NewStyle())
		row = row.append(r.message(n.Commit, opts), r.Theme.MessageStyle(i == opts.Selected, !n.InCurrentBranch))
		f.Lines = append(f.Lines, row)

		if i+1 < l.Len() {
			f.Lines = append(f.Lines, r.EdgeRow(l, i, l.EdgeLanes(i), sync))
		}
	}

	return f
}

// Window returns up to height lines starting at offset
func (f *Frame) Window(offset, height int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(f.Lines) || height <= 0 {
		return nil
	}
	end := min(offset+height, len(f.Lines))
	return f.Lines[offset:end]
}

// ScrollTo returns the scroll offset that keeps the node row of selected
// inside a viewport of height lines, moving offset as little as possible.
func ScrollTo(selected, offset, height int) int {
	line := NodeLine(selected)
	if line < offset {
		return line
	}
	if line >= offset+max(height-1, 0) {
		return max(line-max(height-2, 0), 0)
	}
	return offset
}

func (r *Renderer) message(c *graph.Commit, opts FrameOptions) string {
	text := c.ShortID + " " + ansi.Truncate(c.Subject(), opts.MessageWidth, "...")
	if opts.ShowAuthor && c.Author != "" {
		text += " (" + c.Author + ")"
	}
	return text
}
