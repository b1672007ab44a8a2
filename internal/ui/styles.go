package ui

import "github.com/charmbracelet/lipgloss"

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorMagenta  = lipgloss.Color("#FF00FF")
	ColorBlue     = lipgloss.Color("#5555FF")
	ColorPurple   = lipgloss.Color("#AA55FF")
	ColorOrange   = lipgloss.Color("#FFA500")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8 - matches ratatui's DarkGray
)

// BranchColor colours a branch label: the mainline red, a detached HEAD
// yellow, anything else green.
func BranchColor(branch, mainBranch string) lipgloss.Color {
	switch {
	case branch == "":
		return ColorYellow
	case branch == mainBranch, branch == "main", branch == "master":
		return ColorRed
	default:
		return ColorGreen
	}
}
