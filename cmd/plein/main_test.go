package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plein/internal/core/domain"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		config       string
		args         []string
		expectedExit int
	}{
		{
			name:         "Version",
			args:         []string{"plein", "version"},
			expectedExit: 0,
		},
		{
			name:         "Missing config",
			args:         []string{"plein", "run"},
			expectedExit: 1,
		},
		{
			name:         "Status without history",
			config:       "version: \"1\"\ntask: compile\n",
			args:         []string{"plein", "status"},
			expectedExit: 0,
		},
		{
			name:         "Run without leiningen jar",
			config:       "version: \"1\"\ntask: compile\n",
			args:         []string{"plein", "run"},
			expectedExit: 1,
		},
		{
			name:         "Invalid task spec",
			config:       "version: \"1\"\nparallel: true\ntask: \"a: b: c\"\n",
			args:         []string{"plein", "run"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.config != "" {
				err := os.WriteFile(filepath.Join(tmpDir, domain.ConfigFileName), []byte(tt.config), 0o600)
				require.NoError(t, err)
			}
			t.Chdir(tmpDir)

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
