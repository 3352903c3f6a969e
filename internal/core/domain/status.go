package domain

// TaskStatus is the lifecycle state of a task within a single run.
type TaskStatus string

const (
	// StatusPending indicates the task has not been started.
	StatusPending TaskStatus = "PENDING"
	// StatusRunning indicates the task has been dispatched to a runner.
	StatusRunning TaskStatus = "RUNNING"
	// StatusComplete indicates the runner reported success.
	StatusComplete TaskStatus = "COMPLETE"
	// StatusFailed indicates the runner reported failure.
	StatusFailed TaskStatus = "FAILED"
)

// IsTerminal reports whether no further transition is possible from s.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// CanTransition reports whether moving from s to next is a legal step.
// Statuses only advance: PENDING -> RUNNING -> COMPLETE | FAILED.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusComplete || next == StatusFailed
	default:
		return false
	}
}

// Result is the outcome reported to a listener when a run ends.
type Result string

const (
	// ResultSuccess means every task completed.
	ResultSuccess Result = "SUCCESS"
	// ResultFailure means at least one task failed.
	ResultFailure Result = "FAILURE"
	// ResultAborted means the run was interrupted before it could finish.
	ResultAborted Result = "ABORTED"
)
