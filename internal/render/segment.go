package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text drawn with a single style
type Segment struct {
	Text  string
	Style lipgloss.Style
}

// Row is one rendered line
type Row []Segment

// Plain returns the row text without styling
func (r Row) Plain() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Text)
	}
	return b.String()
}

// String renders every segment with its style
func (r Row) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Style.Render(s.Text))
	}
	return b.String()
}

// Width returns the printable width of the row
func (r Row) Width() int {
	return lipgloss.Width(r.Plain())
}

func (r Row) append(text string, style lipgloss.Style) Row {
	return append(r, Segment{Text: text, Style: style})
}

// blankRow returns width empty cells
func blankRow(width int) Row {
	return Row{{Text: strings.Repeat(" ", 2*max(width, 0)), Style: lipgloss.NewStyle()}}
}
