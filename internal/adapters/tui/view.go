package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/ui/style"
)

// View renders the task list and, once the terminal size is known, the log pane.
func (m *Model) View() string {
	if m.viewport.Height <= 0 {
		return m.taskList()
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(m.taskList()),
		m.logPane(),
	)
}

func (m *Model) taskList() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	for _, task := range m.tasks {
		icon, color := style.ForStatus(string(task.status))
		if task.status == domain.StatusRunning && !m.done {
			icon = m.spinner.View()
		}

		prefix := "  "
		name := task.name
		if task.name == m.active {
			prefix = "> "
			name = activeStyle.Render(name)
		}
		fmt.Fprintf(&s, "%s%s %s\n", prefix, lipgloss.NewStyle().Foreground(color).Render(icon), name)
	}

	return s.String()
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOGS (Waiting...)")
	if m.active != "" {
		header = titleStyle.Render("LOGS: " + m.active)
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.viewport.View(),
		),
	)
}
