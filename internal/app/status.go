package app

import (
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/zerr"
)

// TaskState is the last recorded outcome of a task.
type TaskState struct {
	domain.TaskRecord
	// Stale is set when the configuration changed since the task last ran.
	Stale bool
}

// Status returns the recorded task outcomes of the project at configPath.
func (a *App) Status(configPath string) ([]TaskState, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	store, err := a.stores.Open(cfg.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open run history")
	}

	records, err := store.List()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list run history")
	}

	fingerprint, err := a.hasher.Fingerprint(cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to fingerprint configuration")
	}

	states := make([]TaskState, len(records))
	for i, rec := range records {
		states[i] = TaskState{
			TaskRecord: rec,
			Stale:      rec.Fingerprint != fingerprint,
		}
	}
	return states, nil
}
