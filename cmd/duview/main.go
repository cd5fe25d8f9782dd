// duview reports disk usage, either as a plain per-path summary or as
// an interactive terminal browser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"duview/internal/config"
	"duview/internal/log"
	"duview/internal/traverse"
	"duview/pkg/format"
)

var version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootFlags carries the persistent flag values shared by every
// subcommand, resolved against the config file in loadConfig.
type rootFlags struct {
	cfgFile    string
	byteFormat string
	excludes   []string
	workers    int
	debug      bool
}

// NewRootCmd creates the root command. Without a subcommand it scans
// the given paths (the working directory when none are given) and
// prints one total per path.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "duview [path...]",
		Short: "A disk usage viewer for the terminal",
		Long:  `duview aggregates the disk usage of directory trees.

Called plainly it prints one total per path, like du. The interactive
subcommand opens a browsable view of the same tree instead.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runAggregate(cmd, scanPaths(args), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is $HOME/.config/duview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.byteFormat, "format", "", "byte format: metric, binary or bytes")
	rootCmd.PersistentFlags().StringArrayVar(&flags.excludes, "exclude", nil, "glob pattern of entry names to skip (repeatable)")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "concurrent sizing workers (0 = one per CPU)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewInteractiveCmd(flags))

	return rootCmd
}

// loadConfig reads the config file and lays the command-line flags the
// user actually set over it.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.cfgFile != "" {
		cfg, err = config.LoadConfigFile(flags.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		if _, err := format.ParseByteFormat(flags.byteFormat); err != nil {
			return nil, err
		}
		cfg.Display.ByteFormat = flags.byteFormat
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Scan.Excludes = append(cfg.Scan.Excludes, flags.excludes...)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = flags.workers
	}
	if flags.debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.SetDebug(cfg.Log.Debug)
	return cfg, nil
}

// scanPaths defaults to the working directory when the user named none.
func scanPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{"."}
}

// runAggregate scans every path and prints its total, followed by a
// grand total when more than one path was given.
func runAggregate(cmd *cobra.Command, paths []string, cfg *config.Config) error {
	bf, err := format.ParseByteFormat(cfg.Display.ByteFormat)
	if err != nil {
		return err
	}

	trav, err := traverse.Walk(paths, traverse.Options{
		Workers:  cfg.Scan.Workers,
		Excludes: cfg.Scan.Excludes,
	}, nil)
	if err != nil {
		return err
	}

	tree := trav.Tree
	out := cmd.OutOrStdout()
	for _, child := range tree.Children(tree.Top()) {
		e := tree.Entry(child)
		fmt.Fprintf(out, "%s\t%s\n", bf.Format(e.Size), e.Name)
	}
	if len(tree.Children(tree.Top())) > 1 {
		fmt.Fprintf(out, "%s\ttotal\n", bf.Format(trav.TotalBytes))
	}
	if trav.IOErrors > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "duview: %d entries could not be read\n", trav.IOErrors)
	}
	return nil
}
