package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const (
	nameSeparator = ":"
	depSeparator  = ";"
)

// ParseSpec turns a multi-line task spec into a Plan.
//
// Each line declares one task, either `name` or `name: dep1; dep2; ...`. Names are
// trimmed, dependency order is preserved and empty dependency entries are dropped.
// Blank lines are skipped. A line with more than one ':' or an empty name fails the
// whole parse, as does declaring the same task twice.
func ParseSpec(text string) (*Plan, error) {
	plan := NewPlan()

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		task, err := parseLine(line)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "line", i+1), "text", line)
		}

		if err := plan.AddTask(task); err != nil {
			return nil, zerr.With(err, "line", i+1)
		}
	}

	return plan, nil
}

func parseLine(line string) (Task, error) {
	parts := strings.Split(line, nameSeparator)
	if len(parts) > 2 {
		return Task{}, zerr.Wrap(ErrInvalidSpec, `expected task line to be "task: deps"`)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Task{}, zerr.Wrap(ErrInvalidSpec, "task name is empty")
	}

	task := Task{Name: NewInternedString(name)}
	if len(parts) < 2 {
		return task, nil
	}

	for _, dep := range strings.Split(parts[1], depSeparator) {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}
		task.Dependencies = append(task.Dependencies, NewInternedString(dep))
	}
	return task, nil
}
