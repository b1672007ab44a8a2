package render

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/railway/internal/graph"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func commit(id string, ts int64, parents ...string) graph.Commit {
	return graph.Commit{
		ID:        id,
		ShortID:   id,
		Parents:   parents,
		Message:   "subject " + id,
		Timestamp: ts,
	}
}

// rows: m(0, col 0), c(1, col 1), b(2, col 0), a(3, col 0)
func mergeLayout(inBranch func(string) bool) *graph.Layout {
	commits := []graph.Commit{
		commit("a", 1),
		commit("b", 2, "a"),
		commit("c", 3, "a"),
		commit("m", 4, "b", "c"),
	}
	return graph.Build(graph.NewCommitGraph(commits), graph.Options{MainTip: "m", InCurrentBranch: inBranch})
}

// rows: m2(0, col 0), y(1, col 1), m1(2, col 0), x(3, col 2), a(4, col 0)
func concurrentLayout(inBranch func(string) bool) *graph.Layout {
	commits := []graph.Commit{
		commit("a", 1),
		commit("x", 2, "a"),
		commit("y", 3, "a"),
		commit("m1", 4, "a", "x"),
		commit("m2", 5, "m1", "y"),
	}
	return graph.Build(graph.NewCommitGraph(commits), graph.Options{MainTip: "m2", InCurrentBranch: inBranch})
}

func mainline(id string) bool {
	return id == "a" || id == "m1" || id == "m2"
}

func nodeRow(r *Renderer, l *graph.Layout, i int, onPath bool) Row {
	return r.NodeRow(&l.Nodes[i], l.Width, l.NodeLanes(i), graph.Synced, onPath)
}

func edgeRow(r *Renderer, l *graph.Layout, i int) Row {
	return r.EdgeRow(l, i, l.EdgeLanes(i), graph.Synced)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '●', Glyph(Commit, true))
	assert.Equal(t, '○', Glyph(Commit, false))
	assert.Equal(t, '◉', Glyph(CommitHead, false))
	assert.Equal(t, '┃', Glyph(Vertical, true))
	assert.Equal(t, '╯', Glyph(BottomRight, false))
	assert.Equal(t, '│', Glyph(Cross, true))
	assert.Equal(t, ' ', Glyph(Shape(99), false))
}

func TestCommitStyle(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		sync       graph.SyncStatus
		notCurrent bool
		want       lipgloss.Color
	}{
		{graph.Synced, false, theme.Synced},
		{graph.LocalOnly, false, theme.LocalOnly},
		{graph.RemoteOnly, false, theme.RemoteOnly},
		{graph.Diverged, false, theme.Diverged},
		{graph.LocalOnly, true, theme.Foreign},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.sync, tt.notCurrent), func(t *testing.T) {
			assert.Equal(t, tt.want, theme.CommitStyle(tt.sync, tt.notCurrent).GetForeground())
		})
	}
}

func TestNodeRow_Merge(t *testing.T) {
	l := mergeLayout(nil)
	r := NewRenderer("")

	assert.Equal(t, "○─╮ ", nodeRow(r, l, 0, false).Plain())
	assert.Equal(t, "│ ○ ", nodeRow(r, l, 1, false).Plain())
	assert.Equal(t, "○ │ ", nodeRow(r, l, 2, false).Plain())
	assert.Equal(t, "○   ", nodeRow(r, l, 3, false).Plain())
}

func TestNodeRow_HeadAndAncestry(t *testing.T) {
	l := mergeLayout(nil)
	r := NewRenderer("m")

	assert.Equal(t, "◉─╮ ", nodeRow(r, l, 0, false).Plain())
	assert.Equal(t, "│ ● ", nodeRow(r, l, 1, true).Plain())
}

func TestNodeRow_PassingLaneKeepsOwnStyle(t *testing.T) {
	l := mergeLayout(func(id string) bool { return id != "c" })
	r := NewRenderer("")

	// b's row: column 1 still carries c's line
	row := nodeRow(r, l, 2, false)
	require.Len(t, row, 2)
	assert.Equal(t, r.Theme.Synced, row[0].Style.GetForeground())
	assert.Equal(t, r.Theme.Foreign, row[1].Style.GetForeground())
}

func TestEdgeRow_Merge(t *testing.T) {
	l := mergeLayout(nil)
	r := NewRenderer("")

	assert.Equal(t, "│ │ ", edgeRow(r, l, 0).Plain())
	assert.Equal(t, "│ │ ", edgeRow(r, l, 1).Plain())
	// c joins a below b
	assert.Equal(t, "├─╯ ", edgeRow(r, l, 2).Plain())
	assert.Equal(t, "    ", edgeRow(r, l, 3).Plain())
}

func TestEdgeRow_JoiningLaneStylesTheDash(t *testing.T) {
	l := mergeLayout(func(id string) bool { return id != "c" })
	r := NewRenderer("")

	row := edgeRow(r, l, 2)
	require.Len(t, row, 3)
	assert.Equal(t, "├", row[0].Text)
	assert.Equal(t, r.Theme.Synced, row[0].Style.GetForeground())
	assert.Equal(t, "─", row[1].Text)
	assert.Equal(t, r.Theme.Foreign, row[1].Style.GetForeground())
	assert.Equal(t, "╯ ", row[2].Text)
	assert.Equal(t, r.Theme.Foreign, row[2].Style.GetForeground())
}

func TestEdgeRow_LeftBendCrossingJoiningLane(t *testing.T) {
	l := concurrentLayout(mainline)
	r := NewRenderer("")

	row := edgeRow(r, l, 3)
	assert.Equal(t, "├─╯─╯ ", row.Plain())
	require.Len(t, row, 5)

	// the tee joins a, which is on the current branch
	assert.Equal(t, "├", row[0].Text)
	assert.Equal(t, r.Theme.Synced, row[0].Style.GetForeground())
	// the closest joining lane (y) owns the dash
	assert.Equal(t, r.Theme.Foreign, row[1].Style.GetForeground())
	assert.Equal(t, "╯", row[2].Text)
	assert.Equal(t, r.Theme.Foreign, row[2].Style.GetForeground())
	assert.Equal(t, "╯ ", row[4].Text)
}

func TestEdgeRow_MergeContinuesSourceLane(t *testing.T) {
	l := concurrentLayout(nil)
	r := NewRenderer("")

	assert.Equal(t, "○─╮   ", nodeRow(r, l, 0, false).Plain())
	assert.Equal(t, "│ │   ", edgeRow(r, l, 0).Plain())
}

func TestEdgeGrid_BendRightCrossesVertical(t *testing.T) {
	g := newEdgeGrid(4)
	g.put(1, cell{shape: Vertical})
	g.bendRight(0, 2)

	var b strings.Builder
	for col := range g.cells {
		b.WriteString(g.at(col).String())
	}
	assert.Equal(t, "├─│─╮   ", b.String())
	assert.True(t, g.ownBranch[1])
}

func TestEdgeGrid_BendLeftWithoutLaneUsesCurve(t *testing.T) {
	g := newEdgeGrid(3)
	g.bendLeft(2, 0)

	var b strings.Builder
	for col := range g.cells {
		b.WriteString(g.at(col).String())
	}
	assert.Equal(t, "╭───╯ ", b.String())
	assert.True(t, g.joinTargets[0])
	assert.Equal(t, 2, g.dashOwner[1])
}

func TestEdgeGrid_JoinFromLeft(t *testing.T) {
	g := newEdgeGrid(3)
	g.put(2, cell{shape: Vertical})
	g.join(0, 2)

	var b strings.Builder
	for col := range g.cells {
		b.WriteString(g.at(col).String())
	}
	assert.Equal(t, "├───╯ ", b.String())
	assert.Equal(t, 0, g.foreign[2])
}

func TestEdgeGrid_OutOfRangeIgnored(t *testing.T) {
	g := newEdgeGrid(2)
	g.put(5, cell{shape: Vertical})
	g.put(-1, cell{shape: Vertical})
	g.bendRight(0, 4)

	assert.Len(t, g.cells, 2)
	assert.True(t, g.at(5).empty())
}

func randomLayout(seed int64, n int) *graph.Layout {
	r := rand.New(rand.NewSource(seed))
	commits := make([]graph.Commit, 0, n)
	for i := 0; i < n; i++ {
		var parents []string
		if i > 0 {
			parents = append(parents, commits[r.Intn(i)].ID)
			if i > 2 && r.Intn(3) == 0 {
				if other := commits[r.Intn(i)].ID; other != parents[0] {
					parents = append(parents, other)
				}
			}
		}
		commits = append(commits, commit(fmt.Sprintf("c%03d", i), int64(i), parents...))
	}
	return graph.Build(graph.NewCommitGraph(commits), graph.Options{
		InCurrentBranch: func(id string) bool { return id[len(id)-1]%2 == 0 },
	})
}

func TestRows_AlwaysFullWidth(t *testing.T) {
	r := NewRenderer("c010")
	for seed := int64(1); seed <= 6; seed++ {
		l := randomLayout(seed, 80)
		for i := range l.Nodes {
			node := nodeRow(r, l, i, i%2 == 0)
			assert.Equal(t, 2*l.Width, utf8.RuneCountInString(node.Plain()), "seed %d node row %d", seed, i)

			edge := edgeRow(r, l, i)
			assert.Equal(t, 2*l.Width, utf8.RuneCountInString(edge.Plain()), "seed %d edge row %d", seed, i)
		}
	}
}

func TestRow_StringWithoutColours(t *testing.T) {
	l := mergeLayout(nil)
	row := edgeRow(NewRenderer(""), l, 2)

	assert.Equal(t, row.Plain(), row.String())
	assert.Equal(t, 4, row.Width())
}
