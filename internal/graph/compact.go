package graph

// extent is a half-open row interval [start, end) covered by a lane
type extent struct {
	start, end int
}

func (e extent) overlaps(o extent) bool {
	return !(e.end <= o.start || o.end <= e.start)
}

func (e extent) union(o extent) extent {
	return extent{start: min(e.start, o.start), end: max(e.end, o.end)}
}

// laneExtents computes the rows each lane spans, including the rows down
// to each commit's furthest parent and the edge row below it.
func laneExtents(g *CommitGraph, order []string, rows map[string]int, columns map[string]int) map[int]extent {
	extents := make(map[int]extent)

	widen := func(col int, e extent) {
		if cur, ok := extents[col]; ok {
			extents[col] = cur.union(e)
			return
		}
		extents[col] = e
	}

	for idx, id := range order {
		col, ok := columns[id]
		if !ok {
			continue
		}
		commit, _ := g.Commit(id)

		furthest := idx
		for _, parentID := range commit.Parents {
			if row, ok := rows[parentID]; ok {
				furthest = max(furthest, row)
			}
		}
		widen(col, extent{start: idx, end: furthest + 1})

		if !commit.IsMerge() {
			continue
		}
		// The line toward a parent in another lane starts on the edge row
		// directly below the merge.
		for _, parentID := range commit.Parents {
			parentCol, ok := columns[parentID]
			if !ok || parentCol == col {
				continue
			}
			if cur, ok := extents[parentCol]; ok {
				cur.start = min(cur.start, idx+1)
				extents[parentCol] = cur
			} else {
				extents[parentCol] = extent{start: idx + 1, end: idx + 1}
			}
		}
	}

	return extents
}

// compactLanes moves lanes onto lower lanes whose extents they do not
// overlap, then rewrites node columns and connection targets. It returns
// the graph width and the sorted columns in use.
func compactLanes(g *CommitGraph, order []string, rows map[string]int, nodes []Node, columns map[string]int) (int, []int) {
	extents := laneExtents(g, order, rows, columns)

	maxLane := 0
	hasCommits := make(map[int]bool)
	for _, col := range columns {
		hasCommits[col] = true
		maxLane = max(maxLane, col)
	}

	mapping := make(map[int]int, maxLane+1)
	for lane := 0; lane <= maxLane; lane++ {
		mapping[lane] = lane
	}

	for source := 1; source <= maxLane; source++ {
		if !hasCommits[source] {
			continue
		}
		src, ok := extents[source]
		if !ok {
			continue
		}

		target := source
		for candidate := 1; candidate < source; candidate++ {
			if !hasCommits[candidate] {
				target = candidate
				extents[candidate] = src
				break
			}
			if cand, ok := extents[candidate]; ok && !src.overlaps(cand) {
				target = candidate
				extents[candidate] = cand.union(src)
				break
			}
		}

		if target != source {
			delete(hasCommits, source)
			hasCommits[target] = true
		}
		mapping[source] = target
	}

	remap := func(col int) int {
		if to, ok := mapping[col]; ok {
			return to
		}
		return col
	}

	for id, col := range columns {
		columns[id] = remap(col)
	}

	width := 1
	for _, col := range columns {
		width = max(width, col+1)
	}

	clamp := func(col int) int {
		return min(max(col, 0), width-1)
	}

	for i := range nodes {
		nodes[i].Column = clamp(remap(nodes[i].Column))
		for j := range nodes[i].Connections {
			conn := &nodes[i].Connections[j]
			if conn.Kind == Vertical {
				continue
			}
			conn.Column = clamp(remap(conn.Column))
		}
	}

	return width, sortedColumns(columns)
}
