package lein_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plein/internal/adapters/lein"
	"go.trai.ch/plein/internal/adapters/telemetry"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig() *domain.Config {
	return &domain.Config{
		Task:       "test",
		Root:       "/work",
		SubdirPath: "app",
		JVMOpts:    "-Xmx1g  -Dfoo=bar ",
		JarPath:    "/opt/lein/leiningen-standalone.jar",
		Env:        map[string]string{"LEIN_SNAPSHOTS_IN_RELEASE": "1"},
	}
}

func TestRunner_Command(t *testing.T) {
	cfg := testConfig()
	cfg.JDKHome = "/usr/lib/jvm/java-17"

	r := lein.NewRunner(cfg, nil, nil, nil)
	r.SetWindows(false)

	cmd, err := r.Command(`test :only "my ns"`)
	require.NoError(t, err)

	workDir := filepath.Join("/work", "app")
	assert.Equal(t, &domain.Command{
		Name: filepath.Join("/usr/lib/jvm/java-17", "bin", "java"),
		Args: []string{
			"-client",
			"-XX:+TieredCompilation",
			"-Xbootclasspath/a:/opt/lein/leiningen-standalone.jar",
			"-Xmx1g",
			"-Dfoo=bar",
			"-Dfile.encoding=UTF-8",
			"-Dmaven.wagon.http.ssl.easy=false",
			"-Dleiningen.original.pwd=" + workDir,
			"-cp", "/opt/lein/leiningen-standalone.jar",
			"clojure.main",
			"-m", "leiningen.core.main",
			"test", ":only", "my ns",
		},
		Dir: workDir,
		Env: map[string]string{"LEIN_SNAPSHOTS_IN_RELEASE": "1"},
	}, cmd)
}

func TestRunner_Command_Windows(t *testing.T) {
	cfg := testConfig()
	cfg.SubdirPath = ""
	cfg.JVMOpts = ""

	r := lein.NewRunner(cfg, nil, nil, nil)
	r.SetWindows(true)

	cmd, err := r.Command("uberjar")
	require.NoError(t, err)

	assert.Equal(t, "cmd.exe", cmd.Name)
	assert.Equal(t, []string{"/C", "java", "-client"}, cmd.Args[:3])
	assert.Equal(t, "uberjar", cmd.Args[len(cmd.Args)-1])
	assert.Equal(t, "/work", cmd.Dir)
	assert.Contains(t, cmd.Args, "-Dleiningen.original.pwd=/work")
}

func TestRunner_Command_RelativePaths(t *testing.T) {
	cfg := testConfig()
	cfg.JarPath = "tools/lein.jar"

	r := lein.NewRunner(cfg, nil, nil, nil)
	r.SetWindows(false)

	cmd, err := r.Command("compile")
	require.NoError(t, err)

	jar := filepath.Join("/work", "tools", "lein.jar")
	assert.Contains(t, cmd.Args, "-Xbootclasspath/a:"+jar)
	assert.Contains(t, cmd.Args, jar)
	assert.Equal(t, "java", cmd.Name)
}

func TestRunner_Command_MissingJar(t *testing.T) {
	cfg := testConfig()
	cfg.JarPath = "  "

	_, err := lein.NewRunner(cfg, nil, nil, nil).Command("compile")
	assert.ErrorIs(t, err, domain.ErrMissingJarPath)
}

func TestRunner_RunTask_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	executor := mocks.NewMockExecutor(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	ctx := t.Context()
	tracer.EXPECT().Start(ctx, "test :only foo").Return(ctx, span)
	span.EXPECT().Stdout().Return(io.Discard)
	span.EXPECT().Stderr().Return(io.Discard)
	executor.EXPECT().
		Execute(ctx, gomock.Any(), io.Discard, io.Discard).
		DoAndReturn(func(_ context.Context, cmd *domain.Command, _, _ io.Writer) error {
			assert.Equal(t, []string{"test", ":only", "foo"}, cmd.Args[len(cmd.Args)-3:])
			return nil
		})
	span.EXPECT().End(nil)

	r := lein.NewRunner(testConfig(), executor, mocks.NewMockLogger(ctrl), tracer)

	assert.True(t, r.RunTask(ctx, "test :only foo"))
}

func TestRunner_RunTask_CommandFails(t *testing.T) {
	ctrl := gomock.NewController(t)

	execErr := errors.New("exit status 1")
	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(execErr)

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	tracer.EXPECT().Start(gomock.Any(), "test").Return(t.Context(), span)
	span.EXPECT().Stdout().Return(io.Discard)
	span.EXPECT().Stderr().Return(io.Discard)
	span.EXPECT().End(execErr)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, execErr)
		assert.Contains(t, err.Error(), "leiningen failed")
	})

	r := lein.NewRunner(testConfig(), executor, logger, tracer)

	assert.False(t, r.RunTask(t.Context(), "test"))
}

func TestRunner_RunTask_Aborted(t *testing.T) {
	ctrl := gomock.NewController(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Canceled)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "leiningen aborted")
	})

	r := lein.NewRunner(testConfig(), executor, logger, telemetry.NewNoOpTracer())

	assert.False(t, r.RunTask(ctx, "test"))
}

func TestRunner_RunTask_InvalidTask(t *testing.T) {
	for _, task := range []string{"", "   ", "\t\n"} {
		ctrl := gomock.NewController(t)

		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorIs(t, err, domain.ErrInvalidTask)
		})

		r := lein.NewRunner(testConfig(), mocks.NewMockExecutor(ctrl), logger, mocks.NewMockTracer(ctrl))

		assert.False(t, r.RunTask(t.Context(), task))
	}
}

func TestRunner_RunTask_MissingJar(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := testConfig()
	cfg.JarPath = ""

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrMissingJarPath)
		assert.Contains(t, err.Error(), "leiningen failed")
	})

	r := lein.NewRunner(cfg, mocks.NewMockExecutor(ctrl), logger, mocks.NewMockTracer(ctrl))

	assert.False(t, r.RunTask(t.Context(), "compile"))
}
