package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	var yesBorder, yesText, yesIcon lipgloss.Color
	var noBorder, noText, noIcon lipgloss.Color

	if selection == 0 {
		yesBorder = ColorGreen
		yesText = ColorGreen
		yesIcon = ColorGreen
	} else {
		yesBorder = ColorDarkGray
		yesText = ColorWhite
		yesIcon = ColorDarkGray
	}

	if selection == 1 {
		noBorder = ColorRed
		noText = ColorRed
		noIcon = ColorRed
	} else {
		noBorder = ColorDarkGray
		noText = ColorWhite
		noIcon = ColorDarkGray
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesBorder)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesText).Bold(true)
	yesIconStyle := lipgloss.NewStyle().Foreground(yesIcon)

	noStyle := lipgloss.NewStyle().Foreground(noBorder)
	noTextStyle := lipgloss.NewStyle().Foreground(noText).Bold(true)
	noIconStyle := lipgloss.NewStyle().Foreground(noIcon)

	iconYes, iconNo := " ", " "
	if selection == 0 {
		iconYes = ">"
	} else {
		iconNo = ">"
	}

	line1 := yesStyle.Render("┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("│"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", yesIconStyle.Render(iconYes))),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", noIconStyle.Render(iconNo))),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("└────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// Spinner frames using braille characters
var SpinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner returns the spinner character at the given frame index
func Spinner(frame int) string {
	return string(SpinnerFrames[frame%len(SpinnerFrames)])
}

// Arrow returns an arrow indicator for selection
func Arrow(selected bool) string {
	if selected {
		return "▶ "
	}
	return "  "
}

// ArrowStyled returns a styled arrow indicator
func ArrowStyled(selected bool, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(Arrow(selected))
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "success":
		return "✓", ColorGreen
	case "staged":
		return "●", ColorGreen
	case "modified":
		return "✎", ColorYellow
	case "untracked":
		return "?", ColorRed
	case "deleted", "error":
		return "✗", ColorRed
	case "warning":
		return "⊘", ColorYellow
	case "loading":
		return "⏳", ColorYellow
	default:
		return "·", ColorWhite
	}
}

// ColumnBox creates a bordered column with title for multi-pane layouts
// If height > 0, content is padded/truncated to exactly that many lines
func ColumnBox(content string, title string, color lipgloss.Color, isActive bool, width int, height int) string {
	borderColor := color
	if !isActive {
		borderColor = ColorDarkGray
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width)

	var fullContent string
	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		fullContent = titleStyle.Render(" "+title+" ") + "\n" + content
	} else {
		fullContent = content
	}

	// Manually pad/truncate to fixed height
	if height > 0 {
		lines := strings.Split(fullContent, "\n")
		if len(lines) < height {
			for len(lines) < height {
				lines = append(lines, "")
			}
		} else if len(lines) > height {
			lines = lines[:height]
		}
		fullContent = strings.Join(lines, "\n")
	}

	return style.Render(fullContent)
}
