// Package progrock records task progress with vito/progrock.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/plein/internal/core/ports"
)

// Recorder implements ports.Tracer, creating one progrock vertex per task.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with an in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex named after the task. The digest is derived from the name,
// so a task keeps its identity across runs.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	v := r.rec.Vertex(Digest(name), name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the underlying writer.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Digest is the vertex digest used for a task name.
func Digest(name string) digest.Digest {
	return digest.FromString("plein/task/" + name)
}
