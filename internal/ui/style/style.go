// Package style holds the colours and glyphs shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Iris   = lipgloss.Color("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// ForStatus returns the glyph and colour used to render a task status.
func ForStatus(status string) (string, lipgloss.Color) {
	switch status {
	case "COMPLETE":
		return Check, Green
	case "FAILED":
		return Cross, Red
	case "RUNNING":
		return Dot, Iris
	default:
		return Circle, Slate
	}
}
