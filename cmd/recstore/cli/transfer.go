package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/cmd/recstore/config"
)

// TransferOptions holds flags for the export and import commands.
type TransferOptions struct {
	*RootOptions
	Format string // json | sqlite; empty infers from the file extension
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransferOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write a copy of the store to another file",
		Long: `Write a copy of the store to a JSON document or a SQLite database.
The store's own data file is left untouched.

Examples:
  recstore export backup/db.json
  recstore export backup/rocket.db
  recstore export snapshot --format sqlite`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				p, closeFn, err := openTarget(args[0], opts.Format)
				if err != nil {
					return err
				}
				defer closeFn()
				if err := a.store.Export(cmd.Context(), p); err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d tables to %s\n", len(a.store.TableNames()), args[0])
				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "target format (json|sqlite)")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransferOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the store with the contents of another file",
		Long: `Replace every table with the contents of a JSON document or SQLite
database written by export, then persist the result to the store's own
data file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				p, closeFn, err := openTarget(args[0], opts.Format)
				if err != nil {
					return err
				}
				defer closeFn()
				if err := a.store.Import(cmd.Context(), p); err != nil {
					return WrapExitError(ExitCommandError, "import", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "source format (json|sqlite)")
	return cmd
}

// openTarget opens path as a persister of the given or inferred format.
func openTarget(path, format string) (recstore.Persister, func(), error) {
	if format == "" {
		format = inferFormat(path)
	}
	switch format {
	case config.BackendJSON:
		return recstore.NewJSONFile(path), func() {}, nil
	case config.BackendSQLite:
		p, err := openSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	}
	return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be %s or %s", format, config.BackendJSON, config.BackendSQLite))
}

func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return config.BackendSQLite
	}
	return config.BackendJSON
}
