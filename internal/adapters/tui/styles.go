package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/plein/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	// Pane Styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	activeStyle = lipgloss.NewStyle().Bold(true)

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(colorWhite)
)
