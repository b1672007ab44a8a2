package graph

import (
	"slices"
	"sort"
)

// Lanes is the set of columns carrying a line at one rendered row, with the
// branch membership of the commit that owns each of them.
type Lanes struct {
	Active   []int
	InBranch map[int]bool
}

// IsActive reports whether col carries a line
func (l Lanes) IsActive(col int) bool {
	return slices.Contains(l.Active, col)
}

// Membership returns the branch membership of the commit owning col
func (l Lanes) Membership(col int) (inBranch, ok bool) {
	inBranch, ok = l.InBranch[col]
	return inBranch, ok
}

type lanesBuilder struct {
	lanes Lanes
}

func newLanesBuilder() *lanesBuilder {
	return &lanesBuilder{lanes: Lanes{InBranch: make(map[int]bool)}}
}

// add claims col for the first owner only
func (b *lanesBuilder) add(col int, inBranch bool) {
	if slices.Contains(b.lanes.Active, col) {
		return
	}
	b.lanes.Active = append(b.lanes.Active, col)
	b.lanes.InBranch[col] = inBranch
}

func (b *lanesBuilder) build() Lanes {
	sort.Ints(b.lanes.Active)
	return b.lanes
}

// line is a vertical line leaving the commit at row: its own lane down to
// its furthest parent, or one merge line down to that merge parent.
type line struct {
	row      int
	col      int
	inBranch bool
	merge    bool
	end      int // row of the parent it reaches
}

// linesOf lists the lines leaving the commit at row i, own lane first and
// merge lines in parent order
func (l *Layout) linesOf(i int) []line {
	n := &l.Nodes[i]
	var lines []line

	end := -1
	for _, parentID := range n.Commit.Parents {
		if r, ok := l.rows[parentID]; ok && r > i {
			end = max(end, r)
		}
	}
	if end > i {
		lines = append(lines, line{row: i, col: n.Column, inBranch: n.InCurrentBranch, end: end})
	}

	k := 0
	for _, conn := range n.Connections {
		if conn.Kind != MergeFrom {
			continue
		}
		k++
		if k >= len(n.Commit.Parents) {
			break
		}
		if r, ok := l.rows[n.Commit.Parents[k]]; ok && r > i {
			lines = append(lines, line{row: i, col: conn.Column, inBranch: n.InCurrentBranch, merge: true, end: r})
		}
	}
	return lines
}

// bendsIntoNext reports whether the commit at row i bends sideways straight
// into the commit at row i+1
func (l *Layout) bendsIntoNext(i int) bool {
	n, next := &l.Nodes[i], &l.Nodes[i+1]
	return n.Column != next.Column && slices.Contains(n.Commit.Parents, next.Commit.ID)
}

// indexLanes sweeps the rows once, keeping the lines still open in the order
// their commits appear, and records the lanes of every node and edge row.
func (l *Layout) indexLanes() {
	count := len(l.Nodes)
	l.nodeLanes = make([]Lanes, count)
	l.edgeLanes = make([]Lanes, max(count-1, 0))
	l.mergeTargets = make([][]int, max(count-1, 0))

	var open []line
	for i := 0; i < count; i++ {
		open = slices.DeleteFunc(open, func(ln line) bool { return ln.end <= i })
		open = append(open, l.linesOf(i)...)

		current := &l.Nodes[i]
		b := newLanesBuilder()
		for _, ln := range open {
			if ln.row == i && ln.merge {
				continue
			}
			b.add(ln.col, ln.inBranch)
		}
		b.add(current.Column, current.InCurrentBranch)
		b.lanes.InBranch[current.Column] = current.InCurrentBranch
		l.nodeLanes[i] = b.build()

		if i+1 >= count {
			continue
		}
		bends := l.bendsIntoNext(i)
		b = newLanesBuilder()
		for _, ln := range open {
			if ln.row == i && bends {
				continue
			}
			b.add(ln.col, ln.inBranch)
		}
		l.edgeLanes[i] = b.build()
	}

	// A commit merges into the row right below edge row i when its nearest
	// parent is there and every parent is loaded.
	for i := range l.Nodes {
		n := &l.Nodes[i]
		nearest := -1
		for _, parentID := range n.Commit.Parents {
			r, ok := l.rows[parentID]
			if !ok {
				nearest = -1
				break
			}
			if nearest < 0 || r < nearest {
				nearest = r
			}
		}
		if nearest > 0 && nearest-1 < len(l.mergeTargets) {
			l.mergeTargets[nearest-1] = append(l.mergeTargets[nearest-1], n.Column)
		}
	}
}

// NodeLanes returns the columns with a line through the commit row i: every
// commit at or above i with a parent below it, the pending merge lines of
// merges above i, and the commit's own column.
func (l *Layout) NodeLanes(i int) Lanes {
	if i < 0 || i >= len(l.nodeLanes) {
		return newLanesBuilder().build()
	}
	return l.nodeLanes[i]
}

// EdgeLanes returns the columns with a line passing through the edge row
// between commit rows i and i+1. A commit bending directly into the next
// row is left out; the renderer draws that bend itself.
func (l *Layout) EdgeLanes(i int) Lanes {
	if i < 0 || i >= len(l.edgeLanes) {
		return newLanesBuilder().build()
	}
	return l.edgeLanes[i]
}

// MergesInto reports whether a commit at or above row i in column col has
// the commit at row i+1 as a parent while all of its parents are still
// below row i.
func (l *Layout) MergesInto(i, col int) bool {
	if i < 0 || i >= len(l.mergeTargets) {
		return false
	}
	return slices.Contains(l.mergeTargets[i], col)
}
