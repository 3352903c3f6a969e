package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidSpec is returned when a task line does not match `name[: dep1[; dep2...]]`.
	ErrInvalidSpec = zerr.New("invalid task spec")

	// ErrDuplicateTask is returned when a task name is declared more than once in a spec.
	ErrDuplicateTask = zerr.New("duplicate task")

	// ErrMissingDependency is returned when a task references a dependency that is not declared.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")


	// ErrMissingTask is returned when the configuration does not name any task.
	ErrMissingTask = zerr.New("no task configured")

	// ErrInvalidTask is returned when a blank task is handed to a runner.
	ErrInvalidTask = zerr.New("invalid task")

	// ErrMissingJarPath is returned when the Leiningen jar path is not configured.
	ErrMissingJarPath = zerr.New("leiningen jar path is empty")



	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEmptyCommand is returned when an executor is handed a command without a program.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrInvalidParallelism is returned when a negative parallelism is configured.
	ErrInvalidParallelism = zerr.New("parallelism must not be negative")

	// ErrStoreReadFailed is returned when the run history cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run history")

	// ErrStoreUnmarshalFailed is returned when the run history cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal run history")

	// ErrStoreMarshalFailed is returned when the run history cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal run history")

	// ErrStoreWriteFailed is returned when the run history cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run history")

	// ErrStoreCreateFailed is returned when the run history directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create run history directory")

	// ErrFileOpenFailed is returned when a file cannot be opened for hashing.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrBuildExecutionFailed is returned when a run finishes without success.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
