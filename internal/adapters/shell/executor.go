// Package shell provides an executor that runs commands as child processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor that also logs process output line by line.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd and waits for it to exit.
//
// Stdout lines are logged at info level and stderr lines at error level, in addition to
// being copied to stdout and stderr. A nil writer discards. The child sees the allow-listed
// part of the current environment overlaid with cmd.Env.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error {
	if cmd == nil || cmd.Name == "" {
		return zerr.Wrap(domain.ErrEmptyCommand, "no program to execute")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // command comes from the project configuration
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	stdoutPipe, err := c.StdoutPipe()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open stdout"), "command", cmd.Name)
	}
	stderrPipe, err := c.StderrPipe()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open stderr"), "command", cmd.Name)
	}

	if err := c.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.Name)
	}

	stdoutLog := &logWriter{logger: e.logger, level: levelInfo}
	stderrLog := &logWriter{logger: e.logger, level: levelError}

	// Both pipes must be fully read before Wait closes them.
	var g errgroup.Group
	g.Go(func() error {
		defer func() { _ = stdoutLog.Close() }()
		return pump(io.MultiWriter(stdoutLog, stdout), stdoutPipe)
	})
	g.Go(func() error {
		defer func() { _ = stderrLog.Close() }()
		return pump(io.MultiWriter(stderrLog, stderr), stderrPipe)
	})
	copyErr := g.Wait()

	if err := c.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name), "exit_code", exitCode)
	}

	if copyErr != nil {
		return zerr.With(zerr.Wrap(copyErr, "failed to copy command output"), "command", cmd.Name)
	}
	return nil
}

// pump copies r to w. When w fails the rest of r is drained so the child never blocks.
func pump(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, r)
	if err != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	return err
}

const (
	levelInfo  = "info"
	levelError = "error"
)

// logWriter forwards complete lines to the logger, buffering partial ones.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing line without newline.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Error(zerr.New(msg))
	}
}
