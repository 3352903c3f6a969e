package domain

import "path/filepath"

const (
	// PleinDirName is the name of the per-project metadata directory.
	PleinDirName = ".plein"

	// StateFileName is the name of the run history file.
	StateFileName = "state.json"

	// ConfigFileName is the default project configuration file.
	ConfigFileName = "plein.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// StorePath returns the path of the run history file of the project rooted at root.
func StorePath(root string) string {
	return filepath.Join(root, PleinDirName, StateFileName)
}
