// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/plein/internal/core/domain"
)

// TaskRunner performs the external work behind a single named task.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type TaskRunner interface {
	// RunTask executes the task synchronously and reports whether it succeeded.
	// Implementations convert their own failures (launch errors, interruptions,
	// bad configuration) into false; callers never see why a task failed.
	RunTask(ctx context.Context, task string) bool
}

// TaskRunnerFunc adapts an ordinary function to the TaskRunner interface.
type TaskRunnerFunc func(ctx context.Context, task string) bool

// RunTask calls f(ctx, task).
func (f TaskRunnerFunc) RunTask(ctx context.Context, task string) bool {
	return f(ctx, task)
}

// Listener receives the completion signal of a scheduler run.
type Listener interface {
	// Finished is called exactly once, before the run returns.
	Finished(result domain.Result)
}
