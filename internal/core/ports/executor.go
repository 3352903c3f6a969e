package ports

import (
	"context"
	"io"

	"go.trai.ch/plein/internal/core/domain"
)

// Executor defines the interface for launching external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd to completion, copying its output to stdout and stderr.
	//
	// It returns an error if the command cannot be started or exits unsuccessfully.
	Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error
}
