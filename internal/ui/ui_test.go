package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestBranchColor(t *testing.T) {
	assert.Equal(t, ColorRed, BranchColor("trunk", "trunk"))
	assert.Equal(t, ColorRed, BranchColor("master", ""))
	assert.Equal(t, ColorYellow, BranchColor("", "main"))
	assert.Equal(t, ColorGreen, BranchColor("feature", "main"))
}

func TestRenderHeader(t *testing.T) {
	header := RenderHeader(HeaderInfo{Repo: "railway", Branch: "main", Tracking: "origin/main ↑1"})
	assert.Equal(t, " railway │ railway │ on main │ origin/main ↑1", header)

	detached := RenderHeader(HeaderInfo{Repo: "r", DryRun: true})
	assert.Contains(t, detached, "HEAD (detached)")
	assert.Contains(t, detached, "DRY RUN")
}

func TestSpinnerWraps(t *testing.T) {
	assert.Equal(t, Spinner(0), Spinner(len(SpinnerFrames)))
}

func TestColumnBoxHeight(t *testing.T) {
	box := ColumnBox("a\nb\nc\nd", "Title", ColorCyan, true, 10, 3)
	lines := strings.Split(box, "\n")
	// border top, three content lines, border bottom
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[1], "Title")
	assert.Contains(t, lines[3], "b")
	assert.NotContains(t, box, "c")
}

func TestYesNoButtons(t *testing.T) {
	yes := YesNoButtons(0)
	assert.Contains(t, yes, ">  YES")
	assert.NotContains(t, yes, ">  NO")

	no := YesNoButtons(1)
	assert.Contains(t, no, ">  NO")
}

func TestStatusIcon(t *testing.T) {
	icon, color := StatusIcon("error")
	assert.Equal(t, "✗", icon)
	assert.Equal(t, ColorRed, color)

	icon, _ = StatusIcon("unknown")
	assert.Equal(t, "·", icon)
}

func TestSectionHeader(t *testing.T) {
	h := SectionHeader("Changes", ColorPurple)
	assert.True(t, strings.HasPrefix(h, "─── Changes ─"))
	assert.Equal(t, 4+len("Changes")+1+25-len("Changes"), lipgloss.Width(h))
}
