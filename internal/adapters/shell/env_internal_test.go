package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		cmdEnv   map[string]string
		expected []string
	}{
		{
			name:     "system only (allowed)",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			expected: []string{"HOME=/home/test", "PATH=/bin", "USER=test"},
		},
		{
			name:     "system only (filtered)",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			expected: []string{"USER=test"},
		},
		{
			name:     "java settings are inherited",
			sysEnv:   []string{"JAVA_HOME=/usr/lib/jvm/17", "LEIN_HOME=/home/test/.lein"},
			expected: []string{"JAVA_HOME=/usr/lib/jvm/17", "LEIN_HOME=/home/test/.lein"},
		},
		{
			name:     "command overrides",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			cmdEnv:   map[string]string{"USER": "ci", "LEIN_SNAPSHOTS_IN_RELEASE": "1"},
			expected: []string{"LEIN_SNAPSHOTS_IN_RELEASE=1", "PATH=/bin", "USER=ci"},
		},
		{
			name:     "malformed entries are skipped",
			sysEnv:   []string{"PATH", "HOME=/root"},
			expected: []string{"HOME=/root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.cmdEnv))
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "lein")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o644))

	got, err := lookPath("lein", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	_, err = lookPath("data", []string{"PATH=" + dir})
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = lookPath("lein", []string{"HOME=/root"})
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestLogWriter(t *testing.T) {
	var lines []string
	w := &logWriter{logger: recordingLogger{lines: &lines}, level: levelInfo}

	_, _ = w.Write([]byte("a\r\nb"))
	_, _ = w.Write([]byte("c\n\nd"))
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"a", "bc", "", "d"}, lines)
}

type recordingLogger struct {
	lines *[]string
}

func (l recordingLogger) Info(msg string) { *l.lines = append(*l.lines, msg) }
func (l recordingLogger) Warn(msg string) { *l.lines = append(*l.lines, msg) }
func (l recordingLogger) Error(err error) { *l.lines = append(*l.lines, err.Error()) }
