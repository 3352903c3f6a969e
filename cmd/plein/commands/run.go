package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/plein/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			strict, _ := cmd.Flags().GetBool("strict")
			showTUI, _ := cmd.Flags().GetBool("tui")

			opts := app.RunOptions{
				ConfigPath:  configPath(cmd),
				Parallelism: jobs,
				Strict:      strict,
				TUI:         showTUI,
			}
			if cmd.Flags().Changed("parallel") {
				parallel := true
				opts.Parallel = &parallel
			}
			if cmd.Flags().Changed("no-parallel") {
				parallel := false
				opts.Parallel = &parallel
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of tasks running at once (0 for no limit)")
	cmd.Flags().Bool("parallel", false, "Treat the task as a dependency spec")
	cmd.Flags().Bool("no-parallel", false, "Run the task as a single Leiningen command")
	cmd.Flags().Bool("strict", false, "Reject undeclared dependencies and cycles before running")
	cmd.Flags().Bool("tui", false, "Show a live view of running tasks and their output")
	cmd.MarkFlagsMutuallyExclusive("parallel", "no-parallel")
	return cmd
}
