package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex implements ports.Span on top of a progrock vertex.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer recording the task's standard output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer recording the task's error output.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// End completes the vertex; a non-nil err marks it failed.
func (v *Vertex) End(err error) {
	v.vertex.Done(err)
}
