package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/plein/internal/app"
	"go.trai.ch/plein/internal/ui/output"
	"go.trai.ch/plein/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last recorded outcome of each task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := c.app.Status(configPath(cmd))
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), states)
			return nil
		},
	}
}

func renderStatus(w io.Writer, states []app.TaskState) {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())

	muted := r.NewStyle().Foreground(style.Slate)
	if len(states) == 0 {
		_, _ = fmt.Fprintln(w, muted.Render("No recorded runs"))
		return
	}

	width := 0
	for _, s := range states {
		width = max(width, lipgloss.Width(s.TaskName))
	}
	name := r.NewStyle().Width(width)
	warn := r.NewStyle().Foreground(style.Yellow)

	for _, s := range states {
		icon, color := style.ForStatus(string(s.Status))
		line := fmt.Sprintf("%s %s  %s  %s",
			r.NewStyle().Foreground(color).Render(icon),
			name.Render(s.TaskName),
			string(s.Status),
			muted.Render(s.Duration.Round(time.Millisecond).String()),
		)
		if s.Stale {
			line += "  " + warn.Render(style.Warning+" configuration changed")
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
