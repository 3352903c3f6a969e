// Package cas stores the run history of a project in a flat JSON file.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.RunStore using a flat JSON file keyed by task name.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.TaskRecord

	// writeMu serializes saves so the last Put always lands on disk last.
	writeMu sync.Mutex
}

// NewStore opens the store backed by the file at path. A missing file is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.TaskRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", s.path)
	}

	// Write to a sibling file and rename so readers never see a torn file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}

	return nil
}

// Get retrieves the record for a given task name, or nil if there is none.
func (s *Store) Get(taskName string) (*domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[taskName]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores record, replacing any previous record for the same task, and persists the store.
func (s *Store) Put(record domain.TaskRecord) error {
	s.mu.Lock()
	s.cache[record.TaskName] = record
	s.mu.Unlock()

	return s.save()
}

// List returns every record ordered by task name.
func (s *Store) List() ([]domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.TaskRecord, 0, len(s.cache))
	for _, name := range slices.Sorted(maps.Keys(s.cache)) {
		records = append(records, s.cache[name])
	}
	return records, nil
}

// Opener implements ports.RunStoreOpener for the default project layout.
type Opener struct{}

// Open opens the run history stored under root/.plein.
func (Opener) Open(root string) (ports.RunStore, error) {
	return NewStore(domain.StorePath(root))
}
