package scheduler

import "go.trai.ch/plein/internal/core/domain"

// Eligible exposes the eligibility scan for testing.
func Eligible(plan *domain.Plan, statuses map[string]domain.TaskStatus) []string {
	interned := make(map[domain.InternedString]domain.TaskStatus, len(statuses))
	for name, status := range statuses {
		interned[domain.NewInternedString(name)] = status
	}

	var names []string
	for _, name := range eligible(plan, interned) {
		names = append(names, name.String())
	}
	return names
}
