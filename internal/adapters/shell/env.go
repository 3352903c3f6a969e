package shell

import (
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// allowListedEnvVars are the variables inherited from the current process.
// Everything else has to be configured explicitly.
var allowListedEnvVars = map[string]struct{}{
	"HOME":      {},
	"TERM":      {},
	"USER":      {},
	"PATH":      {},
	"TMPDIR":    {},
	"JAVA_HOME": {},
	"LEIN_HOME": {},
	// Needed by cmd.exe and the JVM on Windows.
	"SystemRoot":  {},
	"USERPROFILE": {},
	"APPDATA":     {},
	"TEMP":        {},
}

// resolveEnvironment overlays cmdEnv on the allow-listed part of sysEnv.
// The result is sorted by key.
func resolveEnvironment(sysEnv []string, cmdEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)
	maps.Copy(envMap, cmdEnv)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	return envMap
}

// lookPath searches for file in the PATH of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
