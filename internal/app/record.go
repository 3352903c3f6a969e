package app

import (
	"context"
	"time"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
)

// recordingRunner stores the outcome of every task it runs.
type recordingRunner struct {
	next        ports.TaskRunner
	store       ports.RunStore
	logger      ports.Logger
	fingerprint string
}

func newRecordingRunner(next ports.TaskRunner, store ports.RunStore, logger ports.Logger, fingerprint string) *recordingRunner {
	return &recordingRunner{
		next:        next,
		store:       store,
		logger:      logger,
		fingerprint: fingerprint,
	}
}

// RunTask runs the task and records its outcome. A failure to record is logged and
// never changes the task result.
func (r *recordingRunner) RunTask(ctx context.Context, task string) bool {
	start := time.Now()
	ok := r.next.RunTask(ctx, task)

	status := domain.StatusComplete
	if !ok {
		status = domain.StatusFailed
	}

	err := r.store.Put(domain.TaskRecord{
		TaskName:    task,
		Status:      status,
		Fingerprint: r.fingerprint,
		Duration:    time.Since(start),
		Timestamp:   start,
	})
	if err != nil {
		r.logger.Error(zerr.With(zerr.Wrap(err, "failed to record task outcome"), "task", task))
	}
	return ok
}
