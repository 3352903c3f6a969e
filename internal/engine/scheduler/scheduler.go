// Package scheduler runs the tasks of a plan in dependency order, in parallel.
package scheduler

import (
	"context"
	"maps"
	"sync"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
)

// Scheduler dispatches every task of a plan once all of its dependencies have completed.
// A Scheduler runs one plan at a time.
type Scheduler struct {
	runner      ports.TaskRunner
	logger      ports.Logger
	listener    ports.Listener
	parallelism int
	validate    bool

	runMu sync.Mutex

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]domain.TaskStatus
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithListener sets the listener notified when a run ends.
func WithListener(l ports.Listener) Option {
	return func(s *Scheduler) {
		s.listener = l
	}
}

// WithParallelism caps the number of tasks running at once. n <= 0 means no cap.
func WithParallelism(n int) Option {
	return func(s *Scheduler) {
		s.parallelism = n
	}
}

// WithValidation makes Perform reject plans with undeclared dependencies or cycles.
func WithValidation() Option {
	return func(s *Scheduler) {
		s.validate = true
	}
}

// New creates a new Scheduler that executes tasks through runner.
func New(runner ports.TaskRunner, logger ports.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:     runner,
		logger:     logger,
		listener:   nopListener{},
		taskStatus: make(map[domain.InternedString]domain.TaskStatus),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Perform runs text either as one plain task or, when parallel is set, as a task spec.
//
// In plain mode the runner is invoked exactly once with text and its result is returned
// unchanged. Otherwise text is parsed and the resulting plan is handed to Run; parse and
// validation errors are returned before anything starts.
func (s *Scheduler) Perform(ctx context.Context, text string, parallel bool) (bool, error) {
	if !parallel {
		return s.runner.RunTask(ctx, text), nil
	}

	plan, err := domain.ParseSpec(text)
	if err != nil {
		return false, err
	}

	if s.validate {
		if err := plan.Validate(); err != nil {
			return false, err
		}
	}

	return s.Run(ctx, plan), nil
}

// Run executes every task of plan and reports whether none of them failed.
//
// Once a task fails no further task is started; tasks already running are waited for.
// A dependency that never completes (undeclared, or part of a cycle) leaves the run
// parked until ctx is cancelled, which aborts the run.
func (s *Scheduler) Run(ctx context.Context, plan *domain.Plan) bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	state := s.newRunState(ctx, plan)
	result := state.loop()
	state.drain()

	s.listener.Finished(result)
	return result == domain.ResultSuccess
}

// Statuses returns a copy of the task statuses of the most recent run.
func (s *Scheduler) Statuses() map[string]domain.TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make(map[string]domain.TaskStatus, len(s.taskStatus))
	for name, status := range s.taskStatus {
		statuses[name.String()] = status
	}
	return statuses
}

func (s *Scheduler) resetStatuses(plan *domain.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskStatus = make(map[domain.InternedString]domain.TaskStatus, plan.Len())
	for task := range plan.Tasks() {
		s.taskStatus[task.Name] = domain.StatusPending
	}
}

// transition moves name to next, refusing anything but a forward step.
func (s *Scheduler) transition(name domain.InternedString, next domain.TaskStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.taskStatus[name].CanTransition(next) {
		return false
	}
	s.taskStatus[name] = next
	return true
}

func (s *Scheduler) snapshot() map[domain.InternedString]domain.TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.taskStatus)
}

type result struct {
	task domain.InternedString
	ok   bool
}

type runState struct {
	ctx       context.Context
	plan      *domain.Plan
	resultsCh chan result
	active    int
	stalled   bool
	s         *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, plan *domain.Plan) *runState {
	s.resetStatuses(plan)

	return &runState{
		ctx:       ctx,
		plan:      plan,
		resultsCh: make(chan result, plan.Len()),
		s:         s,
	}
}

func (state *runState) loop() domain.Result {
	for {
		if state.ctx.Err() != nil {
			return domain.ResultAborted
		}
		if done, res := state.finished(); done {
			return res
		}

		state.schedule()

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
			state.collectReady()
		case <-state.ctx.Done():
		}
	}
}

// collectReady applies every result already waiting, so a failure queued behind a
// success is seen before the next scan.
func (state *runState) collectReady() {
	for {
		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		default:
			return
		}
	}
}

// finished reports whether a task has failed or every task has completed.
func (state *runState) finished() (bool, domain.Result) {
	statuses := state.s.snapshot()

	complete := 0
	for _, status := range statuses {
		switch status {
		case domain.StatusFailed:
			return true, domain.ResultFailure
		case domain.StatusComplete:
			complete++
		}
	}

	if complete == len(statuses) {
		return true, domain.ResultSuccess
	}
	return false, ""
}

func (state *runState) schedule() {
	for _, name := range eligible(state.plan, state.s.snapshot()) {
		if state.s.parallelism > 0 && state.active >= state.s.parallelism {
			break
		}
		if !state.s.transition(name, domain.StatusRunning) {
			continue
		}

		state.s.logger.Info("Running task: " + name.String())
		state.active++

		go func(name domain.InternedString) {
			ok := state.s.runner.RunTask(state.ctx, name.String())
			state.resultsCh <- result{task: name, ok: ok}
		}(name)
	}

	if state.active == 0 && !state.stalled {
		state.stalled = true
		state.s.logger.Warn("no task can start: waiting on dependencies that never complete")
	}
}

func (state *runState) handleResult(res result) {
	state.active--

	next := domain.StatusComplete
	if !res.ok {
		next = domain.StatusFailed
	}
	state.s.transition(res.task, next)
}

// drain waits for the tasks still in flight.
func (state *runState) drain() {
	for state.active > 0 {
		state.handleResult(<-state.resultsCh)
	}
}

// eligible returns the pending tasks of plan whose dependencies are all complete,
// in declaration order.
func eligible(plan *domain.Plan, statuses map[domain.InternedString]domain.TaskStatus) []domain.InternedString {
	var names []domain.InternedString
	for task := range plan.Tasks() {
		if statuses[task.Name] != domain.StatusPending {
			continue
		}

		ready := true
		for _, dep := range task.Dependencies {
			if statuses[dep] != domain.StatusComplete {
				ready = false
				break
			}
		}
		if ready {
			names = append(names, task.Name)
		}
	}
	return names
}

type nopListener struct{}

func (nopListener) Finished(domain.Result) {}
