// Package lein runs Leiningen tasks through the standalone jar.
package lein

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.TaskRunner by launching one JVM per task.
type Runner struct {
	cfg      *domain.Config
	executor ports.Executor
	logger   ports.Logger
	tracer   ports.Tracer
	windows  bool
}

// NewRunner creates a Runner for the project described by cfg.
func NewRunner(cfg *domain.Config, executor ports.Executor, logger ports.Logger, tracer ports.Tracer) *Runner {
	return &Runner{
		cfg:      cfg,
		executor: executor,
		logger:   logger,
		tracer:   tracer,
		windows:  runtime.GOOS == "windows",
	}
}

// RunTask runs task, a Leiningen command line such as "test :only foo", and reports
// whether it exited with status zero. Every failure is logged before false is returned.
func (r *Runner) RunTask(ctx context.Context, task string) bool {
	if strings.TrimSpace(task) == "" {
		r.logger.Error(zerr.Wrap(domain.ErrInvalidTask, "invalid task: "+strconv.Quote(task)))
		return false
	}

	cmd, err := r.Command(task)
	if err != nil {
		r.logger.Error(zerr.With(zerr.Wrap(err, "leiningen failed"), "task", task))
		return false
	}

	spanCtx, span := r.tracer.Start(ctx, task)
	err = r.executor.Execute(spanCtx, cmd, span.Stdout(), span.Stderr())
	span.End(err)

	if err != nil {
		msg := "leiningen failed"
		if ctx.Err() != nil {
			msg = "leiningen aborted"
		}
		r.logger.Error(zerr.With(zerr.Wrap(err, msg), "task", task))
		return false
	}
	return true
}

// Command builds the JVM invocation for task.
func (r *Runner) Command(task string) (*domain.Command, error) {
	jarPath := strings.TrimSpace(r.cfg.JarPath)
	if jarPath == "" {
		return nil, domain.ErrMissingJarPath
	}
	jarPath = r.resolve(jarPath)

	workDir := r.workDir()

	java := "java"
	if r.cfg.JDKHome != "" {
		java = r.resolve(filepath.Join(r.cfg.JDKHome, "bin", "java"))
	}

	var args []string
	if r.windows {
		args = append(args, "/C", java)
	}

	args = append(args,
		"-client",
		"-XX:+TieredCompilation",
		"-Xbootclasspath/a:"+jarPath,
	)
	for _, opt := range strings.Split(r.cfg.JVMOpts, " ") {
		if opt != "" {
			args = append(args, opt)
		}
	}
	args = append(args,
		"-Dfile.encoding=UTF-8",
		"-Dmaven.wagon.http.ssl.easy=false",
		"-Dleiningen.original.pwd="+workDir,
		"-cp", jarPath,
		"clojure.main",
		"-m", "leiningen.core.main",
	)
	args = append(args, SplitArgs(task)...)

	name := java
	if r.windows {
		name = "cmd.exe"
	}

	return &domain.Command{
		Name: name,
		Args: args,
		Dir:  workDir,
		Env:  r.cfg.Env,
	}, nil
}

// workDir is the project root, or the configured subdirectory of it.
func (r *Runner) workDir() string {
	if r.cfg.SubdirPath == "" {
		return r.cfg.Root
	}
	return r.resolve(r.cfg.SubdirPath)
}

// resolve makes a relative path relative to the project root.
func (r *Runner) resolve(path string) string {
	if filepath.IsAbs(path) || r.cfg.Root == "" {
		return path
	}
	return filepath.Join(r.cfg.Root, path)
}
