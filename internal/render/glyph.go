// Package render turns a graph layout into rows of styled text segments.
package render

// Shape is one of the fixed glyph shapes the graph is drawn with
type Shape int

const (
	Commit Shape = iota
	CommitHead
	Vertical
	Horizontal
	TopRight
	BottomRight
	TopLeft
	BottomLeft
	TeeRight
	TeeLeft
	Cross
)

// glyphs holds the light and heavy variant of every shape
var glyphs = [...][2]rune{
	Commit:      {'○', '●'},
	CommitHead:  {'◉', '◉'},
	Vertical:    {'│', '┃'},
	Horizontal:  {'─', '━'},
	TopRight:    {'╮', '┓'},
	BottomRight: {'╯', '┛'},
	TopLeft:     {'╭', '┏'},
	BottomLeft:  {'╰', '┗'},
	TeeRight:    {'├', '┣'},
	TeeLeft:     {'┤', '┫'},
	Cross:       {'│', '│'},
}

// Glyph returns the character for a shape. Bold selects the heavy variant
// used along the ancestry path.
func Glyph(s Shape, bold bool) rune {
	if s < 0 || int(s) >= len(glyphs) {
		return ' '
	}
	if bold {
		return glyphs[s][1]
	}
	return glyphs[s][0]
}
