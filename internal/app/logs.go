package app

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// outputSetter is implemented by loggers whose destination can be changed.
type outputSetter interface {
	SetOutput(w io.Writer)
}

// holdLogs buffers log output while the task display owns the terminal.
// The returned function restores stderr and writes out what was held back.
func (a *App) holdLogs() func() {
	l, ok := a.logger.(outputSetter)
	if !ok {
		return func() {}
	}

	buf := &lockedBuffer{}
	l.SetOutput(buf)
	return func() {
		l.SetOutput(nil)
		_, _ = os.Stderr.Write(buf.Bytes())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}
