// Package graph holds the commit store and the lane layout used to draw
// the commit history as a multi-lane graph.
package graph

import (
	"slices"
	"sort"
	"strings"
)

// Commit is an immutable commit record as read from the repository.
type Commit struct {
	// ID is the full commit hash
	ID string
	// ShortID is the abbreviated hash used for display
	ShortID string
	// Parents lists parent ids, first parent first
	Parents []string
	// Message is the full commit message
	Message string
	// Author is the author name
	Author string
	// Timestamp is the commit time in unix seconds, used for ordering only
	Timestamp int64
}

// IsMerge reports whether the commit has more than one parent
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// Subject returns the first line of the message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// CommitGraph owns every loaded commit plus the derived children index and
// the ancestry path of the selected commit.
type CommitGraph struct {
	commits  map[string]*Commit
	children map[string][]string
	ancestry map[string]struct{}
}

// NewCommitGraph ingests a batch of commits in any order and derives the
// children index. Parents that are not part of the batch are left dangling.
func NewCommitGraph(commits []Commit) *CommitGraph {
	g := &CommitGraph{
		commits:  make(map[string]*Commit, len(commits)),
		children: make(map[string][]string, len(commits)),
		ancestry: make(map[string]struct{}),
	}

	for i := range commits {
		c := commits[i]
		g.commits[c.ID] = &c
	}

	// Visit ids in sorted order so the children lists do not depend on
	// map iteration or input order.
	for _, id := range g.sortedIDs() {
		for _, parentID := range g.commits[id].Parents {
			if _, ok := g.commits[parentID]; !ok {
				continue
			}
			if !slices.Contains(g.children[parentID], id) {
				g.children[parentID] = append(g.children[parentID], id)
			}
		}
	}

	return g
}

// Len returns the number of commits in the graph
func (g *CommitGraph) Len() int {
	return len(g.commits)
}

// Commit looks up a commit by id
func (g *CommitGraph) Commit(id string) (*Commit, bool) {
	c, ok := g.commits[id]
	return c, ok
}

// Has reports whether the commit is loaded
func (g *CommitGraph) Has(id string) bool {
	_, ok := g.commits[id]
	return ok
}

// Children returns the ids of loaded commits that list id as a parent
func (g *CommitGraph) Children(id string) []string {
	return g.children[id]
}

// TopologicalSort orders the commits oldest to newest so that every commit
// comes after all of its loaded parents.
//
// Ready commits are sorted newest first (id ascending on ties) and popped
// from the end of a stack, so the newest child of a parent is emitted last.
// Reversed for layout, that child is reached first and inherits the
// parent's lane.
func (g *CommitGraph) TopologicalSort() []string {
	inDegree := make(map[string]int, len(g.commits))
	for id := range g.commits {
		if _, ok := inDegree[id]; !ok {
			inDegree[id] = 0
		}
		for _, child := range g.children[id] {
			inDegree[child]++
		}
	}

	var stack []string
	for id, degree := range inDegree {
		if degree == 0 {
			stack = append(stack, id)
		}
	}
	g.sortNewestFirst(stack)

	result := make([]string, 0, len(g.commits))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, id)

		children := append([]string(nil), g.children[id]...)
		g.sortNewestFirst(children)
		for _, child := range children {
			inDegree[child]--
			if inDegree[child] == 0 {
				stack = append(stack, child)
			}
		}
	}

	return result
}

// TraceAncestry replaces the ancestry path with every commit reachable from
// id through parent links, id included. Parents that are not loaded end
// the walk and are not part of the path.
func (g *CommitGraph) TraceAncestry(id string) {
	visited := make(map[string]struct{})
	stack := []string{id}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		c, ok := g.commits[current]
		if !ok {
			continue
		}
		for _, parentID := range c.Parents {
			if g.Has(parentID) {
				stack = append(stack, parentID)
			}
		}
	}

	g.ancestry = visited
}

// OnAncestryPath reports whether id is on the traced ancestry path
func (g *CommitGraph) OnAncestryPath(id string) bool {
	_, ok := g.ancestry[id]
	return ok
}

// AncestryPath returns a sorted copy of the traced ancestry path
func (g *CommitGraph) AncestryPath() []string {
	ids := make([]string, 0, len(g.ancestry))
	for id := range g.ancestry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *CommitGraph) sortedIDs() []string {
	ids := make([]string, 0, len(g.commits))
	for id := range g.commits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *CommitGraph) sortNewestFirst(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := g.timestamp(ids[i]), g.timestamp(ids[j])
		if ti != tj {
			return ti > tj
		}
		return ids[i] < ids[j]
	})
}

func (g *CommitGraph) timestamp(id string) int64 {
	if c, ok := g.commits[id]; ok {
		return c.Timestamp
	}
	return 0
}

