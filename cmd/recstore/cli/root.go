// Package cli implements the recstore command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routinerocket/recstore/cmd/recstore/config"
)

// RootOptions holds global flags for all commands. Empty values defer to
// the configuration file.
type RootOptions struct {
	ConfigPath string
	DataPath   string
	Backend    string
	LogLevel   string
	Verbose    bool
}

// NewRootCommand creates the root command for the recstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recstore",
		Short: "Routine Rocket record store",
		Long:  "Inspect and operate the Routine Rocket record store: accounts, habits, moods, health and focus logs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Backend {
			case "", config.BackendJSON, config.BackendSQLite:
				return nil
			}
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid backend %q: must be %s or %s", opts.Backend, config.BackendJSON, config.BackendSQLite))
		},
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.DataPath, "data", "", "JSON document path (overrides data.path)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "persistence backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every store operation")

	// Add subcommands
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewHabitCommand(opts))
	cmd.AddCommand(NewMoodCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))
	cmd.AddCommand(NewFocusCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}
