package domain

// Task is one named unit of work in a plan together with the tasks it requires.
type Task struct {
	Name         InternedString
	Dependencies []InternedString
}

// DependencyNames returns the dependency list as plain strings, in declaration order.
func (t Task) DependencyNames() []string {
	names := make([]string, len(t.Dependencies))
	for i, d := range t.Dependencies {
		names[i] = d.String()
	}
	return names
}
