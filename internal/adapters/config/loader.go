// Package config loads the plein.yaml project configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration version this build understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader for plein.yaml files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. A directory is searched for plein.yaml.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.ConfigFileName)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", absPath)
	}

	leinfile, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}

	if leinfile.Version != "" && leinfile.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn("unknown configuration version " + leinfile.Version + ", reading it as version " + SupportedVersion)
	}

	cfg, err := toDomain(leinfile, filepath.Dir(absPath))
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}
	return cfg, nil
}

func decode(data []byte) (*Leinfile, error) {
	var leinfile Leinfile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&leinfile); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	return &leinfile, nil
}

func toDomain(leinfile *Leinfile, root string) (*domain.Config, error) {
	task := string(leinfile.Task)
	if strings.TrimSpace(task) == "" {
		return nil, zerr.Wrap(domain.ErrMissingTask, "task must not be empty")
	}

	if leinfile.Parallelism < 0 {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrInvalidParallelism, "invalid parallelism"),
			"parallelism", leinfile.Parallelism,
		)
	}

	return &domain.Config{
		Task:        task,
		Parallel:    leinfile.Parallel,
		Root:        root,
		SubdirPath:  leinfile.Subdir,
		JVMOpts:     leinfile.JVMOpts,
		JarPath:     leinfile.JarPath,
		JDKHome:     leinfile.JDK,
		Parallelism: leinfile.Parallelism,
		Strict:      leinfile.Strict,
		Env:         leinfile.Env,
	}, nil
}
