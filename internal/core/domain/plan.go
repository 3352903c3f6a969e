// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Plan is the parsed form of a task spec: tasks in declaration order with their dependencies.
type Plan struct {
	order []InternedString
	tasks map[InternedString]Task
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{
		tasks: make(map[InternedString]Task),
	}
}

// AddTask appends a task to the plan.
// It returns ErrDuplicateTask if a task with the same name was already added.
func (p *Plan) AddTask(t Task) error {
	if _, exists := p.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateTask, "task declared twice"), "task", t.Name.String())
	}
	p.tasks[t.Name] = t
	p.order = append(p.order, t.Name)
	return nil
}

// Len returns the number of declared tasks.
func (p *Plan) Len() int {
	return len(p.order)
}

// Task returns the task with the given name.
func (p *Plan) Task(name InternedString) (Task, bool) {
	t, ok := p.tasks[name]
	return t, ok
}

// Names returns the declared task names in declaration order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.order))
	for i, n := range p.order {
		names[i] = n.String()
	}
	return names
}

// Tasks yields the tasks in declaration order.
func (p *Plan) Tasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range p.order {
			if !yield(p.tasks[name]) {
				return
			}
		}
	}
}

// Dependencies returns the plan as a name -> dependency names map.
func (p *Plan) Dependencies() map[string][]string {
	deps := make(map[string][]string, len(p.tasks))
	for name, t := range p.tasks {
		deps[name.String()] = t.DependencyNames()
	}
	return deps
}

// Validate checks that every dependency is a declared task and that the graph is acyclic.
// A plan that fails validation would never finish under the scheduler.
func (p *Plan) Validate() error {
	for _, name := range p.order {
		for _, dep := range p.tasks[name].Dependencies {
			if _, ok := p.tasks[dep]; !ok {
				return zerr.With(
					zerr.With(zerr.Wrap(ErrMissingDependency, "dependency is not a declared task"), "task", name.String()),
					"dependency", dep.String(),
				)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[InternedString]int, len(p.tasks))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		for _, dep := range p.tasks[u].Dependencies {
			switch state[dep] {
			case visiting:
				return cycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range p.order {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError reports the part of path that loops back to dep, e.g. "a -> b -> a".
func cycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "tasks depend on each other"), "cycle", strings.Join(parts, " -> "))
}
