package render

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/railway/internal/graph"
)

// Renderer draws node rows and edge rows. Every row it returns covers
// exactly width cells of two characters each.
type Renderer struct {
	// HeadID is the checked out commit, drawn with the head marker
	HeadID string
	Theme  Theme
}

// NewRenderer returns a renderer using the default theme
func NewRenderer(headID string) *Renderer {
	return &Renderer{HeadID: headID, Theme: DefaultTheme()}
}

// laneStyle styles col by the branch membership of its owner, falling back
// to fallback for columns nobody owns.
func (r *Renderer) laneStyle(lanes graph.Lanes, col int, sync graph.SyncStatus, fallback lipgloss.Style) lipgloss.Style {
	if inBranch, ok := lanes.Membership(col); ok {
		return r.Theme.CommitStyle(sync, !inBranch)
	}
	return fallback
}

// NodeRow draws the row holding the commit marker of n
func (r *Renderer) NodeRow(n *graph.Node, width int, lanes graph.Lanes, sync graph.SyncStatus, onAncestryPath bool) Row {
	row := make(Row, 0, width)
	current := r.Theme.CommitStyle(sync, !n.InCurrentBranch)

	sources := n.MergeSources()
	isMerge := len(sources) > 0
	nearestSource := 0
	if isMerge {
		nearestSource = slices.Min(sources)
	}

	horizontal := string(Glyph(Horizontal, false))
	vertical := string(Glyph(Vertical, false))

	for col := 0; col < width; col++ {
		switch {
		case col == n.Column:
			shape := Commit
			if r.HeadID != "" && n.Commit.ID == r.HeadID {
				shape = CommitHead
			}
			text := string(Glyph(shape, onAncestryPath))
			if isMerge {
				text += horizontal
			} else {
				text += " "
			}
			row = row.append(text, current)

		case isMerge && slices.Contains(sources, col):
			row = row.append(string(Glyph(TopRight, false))+" ", current)

		case isMerge && col > n.Column && col < nearestSource:
			if lanes.IsActive(col) {
				row = row.append(vertical+horizontal, current)
			} else {
				row = row.append(horizontal+horizontal, current)
			}

		case lanes.IsActive(col):
			row = row.append(vertical+" ", r.laneStyle(lanes, col, sync, current))

		default:
			row = row.append("  ", lipgloss.NewStyle())
		}
	}

	return row
}

// EdgeRow draws the connector row between commit rows i and i+1 of l
func (r *Renderer) EdgeRow(l *graph.Layout, i int, lanes graph.Lanes, sync graph.SyncStatus) Row {
	if i < 0 || i+1 >= l.Len() {
		return blankRow(l.Width)
	}
	cur := &l.Nodes[i]
	next := &l.Nodes[i+1]

	grid := newEdgeGrid(l.Width)
	for _, col := range lanes.Active {
		grid.put(col, cell{shape: Vertical})
	}

	// Other live lanes whose parent is the next commit draw their own
	// line into it.
	var joining []int
	for _, col := range lanes.Active {
		if col != cur.Column && l.MergesInto(i, col) {
			joining = append(joining, col)
		}
	}

	var targets []int
	if slices.Contains(cur.Commit.Parents, next.Commit.ID) {
		for _, target := range cur.BranchTargets() {
			if target == next.Column {
				targets = append(targets, target)
			}
		}
	}
	sources := cur.MergeSources()

	switch {
	case len(sources) > 0:
		// the merge itself was drawn on the node row
		grid.put(cur.Column, cell{shape: Vertical})
		for _, src := range sources {
			if src > cur.Column {
				grid.put(src, cell{shape: Vertical})
			}
		}
	case len(targets) > 0:
		for _, target := range targets {
			switch {
			case target > cur.Column:
				grid.bendRight(cur.Column, target)
			case target < cur.Column:
				grid.bendLeft(cur.Column, target)
			}
		}
	default:
		grid.put(cur.Column, cell{shape: Vertical})
	}

	if slices.Contains(next.Commit.Parents, cur.Commit.ID) && grid.at(cur.Column).empty() {
		grid.put(cur.Column, cell{shape: Vertical})
	}

	for _, col := range joining {
		grid.join(col, next.Column)
	}

	current := r.Theme.CommitStyle(sync, !cur.InCurrentBranch)

	colStyle := func(col int) lipgloss.Style {
		if grid.ownBranch[col] {
			return current
		}
		if src, ok := grid.foreign[col]; ok {
			if inBranch, ok := lanes.Membership(src); ok {
				return r.Theme.CommitStyle(sync, !inBranch)
			}
			return current
		}
		return r.laneStyle(lanes, col, sync, current)
	}

	// the dash through col belongs to whichever lane drew the line
	dashStyle := func(col int) lipgloss.Style {
		if src, ok := grid.dashOwner[col]; ok {
			return colStyle(src)
		}
		return colStyle(col)
	}

	dash := string(Glyph(Horizontal, false))
	row := make(Row, 0, l.Width)

	for col := 0; col < l.Width; col++ {
		c := grid.at(col)
		style := colStyle(col)

		switch {
		case c.empty():
			row = row.append("  ", style)

		case c.dash && (c.shape == TeeRight || c.shape == TopLeft):
			teeStyle := style
			if grid.joinTargets[col] {
				teeStyle = r.Theme.CommitStyle(sync, !next.InCurrentBranch)
			}
			row = row.append(string(Glyph(c.shape, false)), teeStyle)
			row = row.append(dash, dashStyle(col))

		case c.dash && (c.shape == BottomRight || c.shape == Vertical):
			row = row.append(string(Glyph(c.shape, false)), r.laneStyle(lanes, col, sync, style))
			row = row.append(dash, dashStyle(col))

		default:
			row = row.append(c.String(), style)
		}
	}

	return row
}

// cell is one two-character position of an edge row: a leading glyph and
// either a trailing dash or a space.
type cell struct {
	shape Shape
	dash  bool
	set   bool
}

func (c cell) empty() bool {
	return !c.set
}

func (c cell) is(shape Shape, dash bool) bool {
	return c.set && c.shape == shape && c.dash == dash
}

func (c cell) String() string {
	if !c.set {
		return "  "
	}
	if c.dash {
		return string(Glyph(c.shape, false)) + string(Glyph(Horizontal, false))
	}
	return string(Glyph(c.shape, false)) + " "
}

// edgeGrid collects the cells of one edge row together with who owns the
// horizontal parts drawn through them.
type edgeGrid struct {
	cells []cell
	// ownBranch marks the horizontal run of the current commit's right bend
	ownBranch map[int]bool
	// foreign maps columns drawn by another lane joining the next commit to
	// that lane
	foreign map[int]int
	// dashOwner maps a column to the lane whose line supplies its dash
	dashOwner map[int]int
	// joinTargets marks where a left bend joins the next commit's lane
	joinTargets map[int]bool
}

func newEdgeGrid(width int) *edgeGrid {
	return &edgeGrid{
		cells:       make([]cell, max(width, 0)),
		ownBranch:   make(map[int]bool),
		foreign:     make(map[int]int),
		dashOwner:   make(map[int]int),
		joinTargets: make(map[int]bool),
	}
}

func (g *edgeGrid) at(col int) cell {
	if col < 0 || col >= len(g.cells) {
		return cell{}
	}
	return g.cells[col]
}

func (g *edgeGrid) put(col int, c cell) {
	if col < 0 || col >= len(g.cells) {
		return
	}
	c.set = true
	g.cells[col] = c
}

// cross runs a horizontal line through col, keeping a vertical line or a
// bend already there. With keep set, any other existing glyph is left alone.
func (g *edgeGrid) cross(col int, keep bool) {
	c := g.at(col)
	switch {
	case c.is(Vertical, false):
		g.put(col, cell{shape: Vertical, dash: true})
	case c.is(BottomRight, false):
		g.put(col, cell{shape: BottomRight, dash: true})
	case keep && !c.empty():
	default:
		g.put(col, cell{shape: Horizontal, dash: true})
	}
}

// bend puts a bottom-right corner at col, keeping a dash running through
func (g *edgeGrid) bend(col int) {
	g.put(col, cell{shape: BottomRight, dash: g.at(col).dash})
}

// bendRight draws the current commit's line from col out to a parent lane
// on its right.
func (g *edgeGrid) bendRight(from, target int) {
	g.put(from, cell{shape: TeeRight, dash: true})
	for c := from + 1; c < target; c++ {
		g.cross(c, false)
		g.ownBranch[c] = true
	}
	g.put(target, cell{shape: TopRight})
}

// bendLeft draws the current commit's line back into a parent lane on its
// left.
func (g *edgeGrid) bendLeft(from, target int) {
	g.joinTargets[target] = true

	for c := target; c < from; c++ {
		if c == target {
			switch existing := g.at(c); {
			case existing.is(Vertical, false):
				g.put(c, cell{shape: TeeRight, dash: true})
			case existing.is(BottomRight, false):
				g.put(c, cell{shape: BottomRight, dash: true})
			default:
				g.put(c, cell{shape: TopLeft, dash: true})
			}
		} else {
			g.cross(c, false)
		}
		g.dashOwner[c] = from
	}
	g.bend(from)
}

// join draws the line of another live lane src into the next commit's
// column.
func (g *edgeGrid) join(src, next int) {
	switch {
	case src > next:
		for c := next + 1; c < src; c++ {
			g.cross(c, true)
			g.foreign[c] = src
			g.dashOwner[c] = src
		}
		g.bend(src)
		g.foreign[src] = src

		if g.at(next).is(Vertical, false) {
			g.put(next, cell{shape: TeeRight, dash: true})
		}
		// the closest joining lane colours the dash at the target
		if owner, ok := g.dashOwner[next]; !ok || src-next < abs(owner-next) {
			g.dashOwner[next] = src
		}

	case src < next:
		for c := src + 1; c < next; c++ {
			g.cross(c, true)
			g.foreign[c] = src
			g.dashOwner[c] = src
		}
		g.put(src, cell{shape: TeeRight, dash: true})
		g.foreign[src] = src
		g.dashOwner[src] = src

		g.bend(next)
		g.foreign[next] = src
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
