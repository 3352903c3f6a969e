package tui

import (
	"context"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/plein/internal/core/ports"
)

var (
	_ ports.Tracer = (*Display)(nil)
	_ io.Closer    = (*Display)(nil)
)

// Display is a ports.Tracer that renders task progress in the terminal.
type Display struct {
	model   *Model
	program *tea.Program
}

// NewDisplay creates a Display. cancel is called when the user presses ctrl+c.
func NewDisplay(cancel context.CancelFunc, opts ...tea.ProgramOption) *Display {
	model := NewModel(cancel)
	return &Display{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Run renders until Close is called or the user quits the view. Tasks keep running
// when the view is closed early.
func (d *Display) Run() error {
	_, err := d.program.Run()
	return err
}

// Start marks name as running and returns a span feeding its output to the view.
func (d *Display) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d.program.Send(MsgTaskStart{Name: name})
	return ctx, &span{display: d, name: name}
}

// Close ends the view after a final render.
func (d *Display) Close() error {
	d.program.Send(MsgDone{})
	return nil
}

type span struct {
	display *Display
	name    string
}

func (s *span) Stdout() io.Writer { return s }

func (s *span) Stderr() io.Writer { return s }

func (s *span) End(err error) {
	s.display.program.Send(MsgTaskComplete{Name: s.name, Err: err})
}

// Write forwards a copy of p; callers may reuse the buffer.
func (s *span) Write(p []byte) (int, error) {
	s.display.program.Send(MsgTaskLog{Name: s.name, Data: slices.Clone(p)})
	return len(p), nil
}
