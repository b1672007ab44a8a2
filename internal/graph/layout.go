package graph

import (
	"slices"
	"sort"
)

// Options controls a layout run
type Options struct {
	// MainTip is the commit id the main lane is seeded from. When empty or
	// unknown the newest commit is used.
	MainTip string
	// InCurrentBranch classifies commits reachable from the checked out
	// position. Nil treats every commit as part of the current branch.
	InCurrentBranch func(id string) bool
}

// Layout is the finished lane assignment, newest commit first
type Layout struct {
	Nodes         []Node
	Width         int
	ActiveColumns []int

	rows map[string]int

	// per-row lanes, filled once by indexLanes
	nodeLanes    []Lanes
	edgeLanes    []Lanes
	mergeTargets [][]int // columns merging into row i+1, by edge row i
}

// Build lays out every commit of g. The result is read-only and is rebuilt
// from scratch on every load.
func Build(g *CommitGraph, opts Options) *Layout {
	order := g.TopologicalSort()
	slices.Reverse(order)

	rows := make(map[string]int, len(order))
	for i, id := range order {
		rows[id] = i
	}

	nodes, columns := assignLanes(g, order, rows, opts.MainTip)
	width, active := compactLanes(g, order, rows, nodes, columns)

	for i := range nodes {
		if opts.InCurrentBranch == nil {
			nodes[i].InCurrentBranch = true
		} else {
			nodes[i].InCurrentBranch = opts.InCurrentBranch(nodes[i].Commit.ID)
		}
	}

	l := &Layout{
		Nodes:         nodes,
		Width:         width,
		ActiveColumns: active,
		rows:          rows,
	}
	l.indexLanes()
	return l
}

// Len returns the number of rows (commits) in the layout
func (l *Layout) Len() int {
	return len(l.Nodes)
}

// Row returns the row index of a commit
func (l *Layout) Row(id string) (int, bool) {
	i, ok := l.rows[id]
	return i, ok
}

// laneState is the bookkeeping of the assignment pass: the commits still
// live in each lane and the next never-used column.
type laneState struct {
	live map[int]map[string]struct{}
	next int
}

func newLaneState() *laneState {
	return &laneState{
		live: map[int]map[string]struct{}{0: {}},
		next: 1,
	}
}

func (s *laneState) markLive(col int, id string) {
	set, ok := s.live[col]
	if !ok {
		set = make(map[string]struct{})
		s.live[col] = set
	}
	set[id] = struct{}{}
}

func (s *laneState) release(col int, id string) {
	delete(s.live[col], id)
}

// allocate returns the first lane above the main lane with nothing live in
// it, or opens a new one.
func (s *laneState) allocate() int {
	for lane := 1; lane < s.next; lane++ {
		if len(s.live[lane]) == 0 {
			return lane
		}
	}
	col := s.next
	s.next++
	return col
}

// assignLanes walks commits newest first and gives each one a column.
// columns may also hold entries for parents that are not loaded.
func assignLanes(g *CommitGraph, order []string, rows map[string]int, mainTip string) ([]Node, map[string]int) {
	columns := make(map[string]int, len(order))

	start := mainTip
	if !g.Has(start) && len(order) > 0 {
		start = order[0]
	}
	for id := start; ; {
		c, ok := g.Commit(id)
		if !ok {
			break
		}
		if _, seen := columns[id]; seen {
			break
		}
		columns[id] = 0
		if c.IsRoot() {
			break
		}
		id = c.Parents[0]
	}

	lanes := newLaneState()
	nodes := make([]Node, 0, len(order))

	for idx, id := range order {
		commit, _ := g.Commit(id)

		column, assigned := columns[id]
		if !assigned {
			column = lanes.allocate()
			columns[id] = column
		}
		lanes.markLive(column, id)

		var connections []Connection

		switch {
		case commit.IsRoot():
			lanes.release(column, id)

		case len(commit.Parents) == 1:
			parentID := commit.Parents[0]
			if parentCol, ok := columns[parentID]; ok {
				if parentCol != column {
					connections = append(connections, BranchToConn(parentCol))
				} else {
					connections = append(connections, VerticalConn())
				}
			} else {
				connections = append(connections, VerticalConn())
				columns[parentID] = column
			}

			// Tips of branches whose parent is still ahead in the walk keep
			// their lane reserved until the parent is reached.
			if row, ok := rows[parentID]; ok && row < idx {
				lanes.release(column, id)
			}

		default:
			if _, ok := columns[commit.Parents[0]]; !ok {
				columns[commit.Parents[0]] = column
			}

			for _, parentID := range commit.Parents[1:] {
				parentCol, ok := columns[parentID]
				if !ok {
					parentCol = lanes.allocate()
					columns[parentID] = parentCol
					lanes.markLive(parentCol, parentID)
				}
				connections = append(connections, MergeFromConn(parentCol))
			}

			lanes.release(column, id)
		}

		nodes = append(nodes, Node{
			Commit:      commit,
			Column:      column,
			Connections: connections,
		})
	}

	return nodes, columns
}

// sortedColumns returns the distinct values of columns in ascending order
func sortedColumns(columns map[string]int) []int {
	seen := make(map[int]struct{}, len(columns))
	var cols []int
	for _, col := range columns {
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}
