// Package app implements the application layer for plein.
package app

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/plein/internal/adapters/lein" //nolint:depguard // Wired in app layer
	"go.trai.ch/plein/internal/adapters/tui"  //nolint:depguard // Wired in app layer
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/plein/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	stores       ports.RunStoreOpener
	hasher       ports.Hasher
	tracer       ports.Tracer
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	logger ports.Logger,
	stores ports.RunStoreOpener,
	hasher ports.Hasher,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       logger,
		stores:       stores,
		hasher:       hasher,
		tracer:       tracer,
	}
}

// WithTeaOptions sets the Bubble Tea program options used by the task display.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions holds the command line overrides for a run.
type RunOptions struct {
	// ConfigPath is the configuration file, or a directory containing plein.yaml.
	ConfigPath string
	// Parallelism overrides the configured cap when positive.
	Parallelism int
	// Parallel overrides the configured mode when set.
	Parallel *bool
	// Strict enables plan validation when set; it never disables a configured one.
	Strict bool
	// TUI shows a live task display instead of plain log output.
	TUI bool
}

// Run loads the configuration and performs its task, recording each task outcome.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	store, err := a.stores.Open(cfg.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to open run history")
	}

	fingerprint, err := a.hasher.Fingerprint(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to fingerprint configuration")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracer := a.tracer
	var display *tui.Display
	if opts.TUI {
		display = tui.NewDisplay(cancel, a.teaOptions...)
		tracer = display
	}

	runner := newRecordingRunner(lein.NewRunner(cfg, a.executor, a.logger, tracer), store, a.logger, fingerprint)
	listener := &resultListener{}

	opt := []scheduler.Option{
		scheduler.WithListener(listener),
		scheduler.WithParallelism(cfg.Parallelism),
	}
	if cfg.Strict {
		opt = append(opt, scheduler.WithValidation())
	}
	sched := scheduler.New(runner, a.logger, opt...)

	var (
		ok         bool
		performErr error
	)
	g := new(errgroup.Group)
	if display != nil {
		restore := a.holdLogs()
		defer restore()
		g.Go(display.Run)
	}
	g.Go(func() error {
		ok, performErr = sched.Perform(runCtx, cfg.Task, cfg.Parallel)
		a.closeTracer(tracer)
		return nil
	})
	if displayErr := g.Wait(); displayErr != nil {
		return zerr.Wrap(displayErr, "task display failed")
	}

	if performErr != nil {
		return zerr.Wrap(performErr, "failed to plan tasks")
	}
	if !ok {
		buildErr := zerr.Wrap(domain.ErrBuildExecutionFailed, "tasks did not complete")
		if cfg.Parallel {
			return zerr.With(buildErr, "result", string(listener.result))
		}
		return buildErr
	}

	a.logger.Info("All tasks completed")
	return nil
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path == "" {
		path = domain.ConfigFileName
	}
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func applyOverrides(cfg *domain.Config, opts RunOptions) error {
	if opts.Parallelism < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidParallelism, "invalid --jobs value"), "jobs", opts.Parallelism)
	}
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}
	if opts.Parallel != nil {
		cfg.Parallel = *opts.Parallel
	}
	if opts.Strict {
		cfg.Strict = true
	}
	return nil
}

// closeTracer flushes tracers that buffer their output.
func (a *App) closeTracer(tracer ports.Tracer) {
	c, ok := tracer.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to close task recorder"))
	}
}

// resultListener keeps the aggregate result of a scheduler run.
type resultListener struct {
	result domain.Result
}

func (l *resultListener) Finished(result domain.Result) {
	l.result = result
}
