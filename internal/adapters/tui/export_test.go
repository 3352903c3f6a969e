package tui

import "go.trai.ch/plein/internal/core/domain"

// Model returns the display's model. Only safe once Run has returned.
func (d *Display) Model() *Model { return d.model }

func (m *Model) Statuses() map[string]domain.TaskStatus {
	out := make(map[string]domain.TaskStatus, len(m.tasks))
	for _, t := range m.tasks {
		out[t.name] = t.status
	}
	return out
}

func (m *Model) Logs(name string) string {
	if n, ok := m.byName[name]; ok {
		return n.logs.String()
	}
	return ""
}

func (m *Model) Active() string { return m.active }

func (m *Model) Done() bool { return m.done }
