package app_test

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plein/internal/adapters/telemetry"
	"go.trai.ch/plein/internal/app"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	stores   *mocks.MockRunStoreOpener
	store    *mocks.MockRunStore
	hasher   *mocks.MockHasher
	app      *app.App

	mu      sync.Mutex
	records []domain.TaskRecord
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stores:   mocks.NewMockRunStoreOpener(ctrl),
		store:    mocks.NewMockRunStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
	}
	f.app = app.New(f.loader, f.executor, f.logger, f.stores, f.hasher, telemetry.NewNoOpTracer())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return f
}

func (f *fixture) config(t *testing.T, task string, parallel bool) *domain.Config {
	t.Helper()
	return &domain.Config{
		Task:     task,
		Parallel: parallel,
		Root:     t.TempDir(),
		JarPath:  "/opt/lein/lein.jar",
	}
}

// expectSetup wires the loader, store and hasher for cfg.
func (f *fixture) expectSetup(cfg *domain.Config) {
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(f.store, nil)
	f.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)
	f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(rec domain.TaskRecord) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.records = append(f.records, rec)
		return nil
	}).AnyTimes()
}

// expectTasks makes the executor succeed for every task except those in failing,
// and returns a function listing the tasks in the order they ran.
func (f *fixture) expectTasks(failing ...string) func() []string {
	var (
		mu  sync.Mutex
		ran []string
	)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd *domain.Command, _, _ any) error {
			task := cmd.Args[len(cmd.Args)-1]
			mu.Lock()
			ran = append(ran, task)
			mu.Unlock()
			if slices.Contains(failing, task) {
				return errors.New("exit status 1")
			}
			return nil
		}).AnyTimes()
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(ran)
	}
}

func (f *fixture) recorded() map[string]domain.TaskRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.TaskRecord, len(f.records))
	for _, rec := range f.records {
		out[rec.TaskName] = rec
	}
	return out
}

func TestApp_Run_Parallel(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "clean\ncompile: clean\ntest: compile", true)
	f.expectSetup(cfg)
	ran := f.expectTasks()

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"clean", "compile", "test"}, ran())
	records := f.recorded()
	require.Len(t, records, 3)
	for _, name := range []string{"clean", "compile", "test"} {
		assert.Equal(t, domain.StatusComplete, records[name].Status, name)
		assert.Equal(t, "fp", records[name].Fingerprint, name)
	}
}

func TestApp_Run_Failure(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "clean\ncompile: clean", true)
	f.expectSetup(cfg)
	ran := f.expectTasks("clean")
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)

	assert.Equal(t, []string{"clean"}, ran())
	assert.Equal(t, domain.StatusFailed, f.recorded()["clean"].Status)
}

func TestApp_Run_NotParallel(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "test :only foo.core-test", false)
	f.expectSetup(cfg)
	ran := f.expectTasks()

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{}))

	assert.Equal(t, []string{"foo.core-test"}, ran())
	records := f.recorded()
	require.Contains(t, records, "test :only foo.core-test")
	assert.Equal(t, domain.StatusComplete, records["test :only foo.core-test"].Status)
}

func TestApp_Run_ParallelOverride(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "compile", true)
	f.expectSetup(cfg)
	ran := f.expectTasks()

	parallel := false
	err := f.app.Run(context.Background(), app.RunOptions{Parallel: &parallel, Parallelism: 3})
	require.NoError(t, err)

	assert.False(t, cfg.Parallel)
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, []string{"compile"}, ran())
}

func TestApp_Run_StrictRejectsUndeclaredDependency(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "compile: deps", true)
	f.loader.EXPECT().Load("custom.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(f.store, nil)
	f.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)

	err := f.app.Run(context.Background(), app.RunOptions{ConfigPath: "custom.yaml", Strict: true})
	require.ErrorIs(t, err, domain.ErrMissingDependency)
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Run_InvalidSpec(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "a: b: c", true)
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(f.store, nil)
	f.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidSpec)
}

func TestApp_Run_ConfigLoaderError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("plein.yaml").Return(nil, domain.ErrConfigReadFailed)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_NegativeJobs(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "compile", true)
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Parallelism: -1})
	require.ErrorIs(t, err, domain.ErrInvalidParallelism)
}

func TestApp_Run_RecordFailureKeepsResult(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "compile", true)
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(f.store, nil)
	f.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(domain.ErrStoreWriteFailed)
	f.expectTasks()
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrStoreWriteFailed)
	})

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{}))
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "clean\ncompile: clean", true)
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(f.store, nil)
	f.hasher.EXPECT().Fingerprint(cfg).Return("current", nil)
	f.store.EXPECT().List().Return([]domain.TaskRecord{
		{TaskName: "clean", Status: domain.StatusComplete, Fingerprint: "current"},
		{TaskName: "compile", Status: domain.StatusFailed, Fingerprint: "old"},
	}, nil)

	states, err := f.app.Status("")
	require.NoError(t, err)
	require.Len(t, states, 2)

	assert.Equal(t, "clean", states[0].TaskName)
	assert.False(t, states[0].Stale)
	assert.Equal(t, "compile", states[1].TaskName)
	assert.Equal(t, domain.StatusFailed, states[1].Status)
	assert.True(t, states[1].Stale)
}

func TestApp_Status_StoreError(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, "clean", true)
	f.loader.EXPECT().Load("plein.yaml").Return(cfg, nil)
	f.stores.EXPECT().Open(cfg.Root).Return(nil, domain.ErrStoreReadFailed)

	_, err := f.app.Status("plein.yaml")
	require.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestApp_Run_TUI(t *testing.T) {
	f := newFixture(t)
	f.app.WithTeaOptions(
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	cfg := f.config(t, "clean\ncompile: clean", true)
	f.expectSetup(cfg)
	ran := f.expectTasks()

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{TUI: true}))

	assert.Equal(t, []string{"clean", "compile"}, ran())
	assert.Len(t, f.recorded(), 2)
}
