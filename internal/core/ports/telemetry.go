package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for recording per-task progress.
type Tracer interface {
	// Start begins recording a unit of work named name.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// Stdout returns a writer for the work's standard output.
	Stdout() io.Writer
	// Stderr returns a writer for the work's error output.
	Stderr() io.Writer
	// End completes the span; a non-nil err marks it failed.
	End(err error)
}
