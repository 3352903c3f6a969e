package ports

import "go.trai.ch/plein/internal/core/domain"

// RunStore defines the interface for storing and retrieving task outcomes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the last record for a given task name.
	// Returns nil, nil if not found.
	Get(taskName string) (*domain.TaskRecord, error)

	// Put stores a record, replacing any previous record for the same task.
	Put(record domain.TaskRecord) error

	// List returns every stored record ordered by task name.
	List() ([]domain.TaskRecord, error)
}

// RunStoreOpener opens the run history of the project rooted at a directory.
type RunStoreOpener interface {
	Open(root string) (RunStore, error)
}
