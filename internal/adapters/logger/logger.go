// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/plein/internal/core/ports"
	"go.trai.ch/plein/internal/ui/output"
	"go.trai.ch/plein/internal/ui/style"
)

// messager is implemented by zerr errors, which can report their own message without the chain.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors carrying key/value metadata.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, false)),
		output: os.Stderr,
	}
}

func newHandler(w io.Writer, jsonMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return &prettyHandler{out: output.New(w), level: opts.Level}
}

// prettyHandler writes records as glyph-prefixed coloured lines. Continuation lines of a
// message, such as the causes of an error, are muted.
type prettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	prefix, color := "", style.Slate
	switch {
	case r.Level >= slog.LevelError:
		prefix, color = style.Cross+" ", style.Red
	case r.Level >= slog.LevelWarn:
		prefix, color = style.Warning+" ", style.Yellow
	}

	lines := strings.Split(r.Message, "\n")
	var b strings.Builder
	b.WriteString(h.paint(prefix+lines[0], color) + "\n")
	for _, line := range lines[1:] {
		b.WriteString(h.paint(line, style.Slate) + "\n")
	}

	_, err := h.out.WriteString(b.String())
	return err
}

func (h *prettyHandler) paint(s string, color lipgloss.Color) string {
	if s == "" {
		return s
	}
	return h.out.String(s).Foreground(termenv.RGBColor(string(color))).String()
}

// ports.Logger only passes messages, so there are no attributes to keep.
func (h *prettyHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *prettyHandler) WithGroup(string) slog.Handler { return h }

// SetOutput redirects the logger, keeping the current JSON mode.
// A nil w restores stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(newHandler(l.output, enable))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. Pretty mode renders the whole cause chain, one entry per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the chain of zerr errors. The first non-zerr error ends the walk.
// Links with an empty message only carry metadata; it is merged into a neighbouring entry.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}

		if m.Message() != "" {
			entries = append(entries, errorEntry{message: m.Message(), metadata: mergeMetadata(pending, meta)})
			pending = nil
			continue
		}

		if len(entries) > 0 {
			last := &entries[len(entries)-1]
			last.metadata = mergeMetadata(last.metadata, meta)
		} else {
			pending = mergeMetadata(pending, meta)
		}
	}

	return entries
}

func mergeMetadata(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	merged := maps.Clone(a)
	maps.Copy(merged, b)
	return merged
}

func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")
		msgLines[0] += formatMetadata(entry.metadata)

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

// formatMetadata renders metadata as " (k1=v1, k2=v2)" with sorted keys.
func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}

	parts := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
