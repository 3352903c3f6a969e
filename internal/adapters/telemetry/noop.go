// Package telemetry holds tracer implementations.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/plein/internal/core/ports"
)

// NoOpTracer is a ports.Tracer that records nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns ctx unchanged and a span that discards everything.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, NoOpSpan{}
}

// NoOpSpan is a ports.Span that discards output.
type NoOpSpan struct{}

// Stdout returns io.Discard.
func (NoOpSpan) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (NoOpSpan) Stderr() io.Writer { return io.Discard }

// End does nothing.
func (NoOpSpan) End(error) {}
