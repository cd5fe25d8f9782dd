package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"duview/internal/log"
	"duview/internal/tui"
)

// NewInteractiveCmd creates the subcommand that opens the full-screen
// browser instead of printing totals.
func NewInteractiveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive [path...]",
		Aliases: []string{"i"},
		Short:   "Browse disk usage in a full-screen view",
		Long:    `Scan the given paths and browse the result interactively: entries of
the current directory ranked by size, with selection, sorting and
rescanning driven by the keyboard.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			// The alternate screen belongs to the view now; logs go to
			// a file when configured and nowhere otherwise.
			if cfg.Log.File != "" {
				log.Configure(log.WithFile(cfg.Log.File))
			} else {
				log.Configure(log.WithDiscard())
			}
			log.SetDebug(cfg.Log.Debug)
			defer log.Close()

			m := tui.New(scanPaths(args), cfg)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running interactive view: %w", err)
			}
			return nil
		},
	}
}
