// Package fs fingerprints project inputs with xxhash.
package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
)

// ProjectFile is the Leiningen project definition included in fingerprints when present.
const ProjectFile = "project.clj"

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes configuration fingerprints.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes everything that changes what a run does: the task text, the JVM
// settings, the environment overrides, the Leiningen jar and the project definition.
func (h *Hasher) Fingerprint(cfg *domain.Config) (string, error) {
	hasher := xxhash.New()

	for _, field := range []string{cfg.Task, cfg.SubdirPath, cfg.JVMOpts, cfg.JDKHome, cfg.JarPath} {
		writeField(hasher, field)
	}
	hashEnvironment(cfg.Env, hasher)

	if cfg.JarPath != "" {
		if err := h.hashFile(resolve(cfg.Root, cfg.JarPath), hasher); err != nil {
			return "", err
		}
	}

	project := filepath.Join(resolve(cfg.Root, cfg.SubdirPath), ProjectFile)
	if err := h.hashFile(project, hasher); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}

// hashEnvironment hashes environment variables in a deterministic order.
func hashEnvironment(env map[string]string, hasher *xxhash.Digest) {
	for _, k := range slices.Sorted(maps.Keys(env)) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		writeField(hasher, env[k])
	}
	_, _ = hasher.Write([]byte{0})
}

// hashFile mixes the content hash of path into hasher. A missing file
// reports an error matching fs.ErrNotExist.
func (h *Hasher) hashFile(path string, hasher io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(zerr.Wrap(iofs.ErrNotExist, "input file missing"), "path", path)
		}
		return zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
