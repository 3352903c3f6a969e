package domain

// Config is the resolved project configuration for one invocation.
type Config struct {
	// Task is either a single Leiningen command line or, when Parallel is set, a task spec.
	Task     string
	Parallel bool

	// Root is the directory containing the configuration file.
	Root       string
	SubdirPath string
	JVMOpts    string
	JarPath    string
	JDKHome    string

	// Parallelism caps concurrently running tasks; zero means unbounded.
	Parallelism int
	// Strict rejects plans with undeclared dependencies or cycles before anything runs.
	Strict bool

	Env map[string]string
}

// Command is a fully resolved external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string
}
