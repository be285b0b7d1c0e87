// Package cli wires the mantrad command tree: the interactive TUI as the
// default action plus scriptable subcommands over the same store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dbPath     string
	ephemeral  bool
	verbose    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "mantrad",
		Short: "mantrad - mantra timer, pomodoro, tasks and notes in the terminal",
		Long: `mantrad shows a mantra with a countdown ring, a pomodoro timer next to a
short task list, a markdown notes archive and a mantra editor.

Timers keep running across restarts: a countdown started before the
process exited is picked up where the wall clock says it should be.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.mantrad/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep state in memory only")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Write debug logs to the log file")

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newMantraCmd(opts))
	rootCmd.AddCommand(newTasksCmd(opts))
	rootCmd.AddCommand(newNotesCmd(opts))
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mantrad %s\n", version)
		},
	}
}
