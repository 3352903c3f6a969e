package ports

import "go.trai.ch/plein/internal/core/domain"

// Hasher defines the interface for fingerprinting a configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable digest of everything that influences how tasks run.
	Fingerprint(cfg *domain.Config) (string, error)
}
