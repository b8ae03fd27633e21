package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "tables",
		Short:        "List tables and their row counts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TABLE\tROWS")
				for _, name := range a.store.TableNames() {
					t, _ := a.store.Table(name)
					fmt.Fprintf(w, "%s\t%d\n", name, t.Len())
				}
				return w.Flush()
			})
		},
	}
}

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Where   []string
	Include []string
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <table>",
		Short: "Print the records of a table as JSON",
		Long: `Print the records of a table as JSON, in insertion order.

Filters compare loosely, the way the application queries do:
"--where userId=1" matches both 1 and "1".

Examples:
  recstore dump Habit
  recstore dump Habit --where userId=1 --include HabitLog
  recstore dump User --where isVerified=true`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter as column=value (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.Include, "include", "i", nil, "child tables to attach")

	return cmd
}

func runDump(cmd *cobra.Command, opts *DumpOptions, name string) error {
	where, err := parseWhere(opts.Where)
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr(), func(a *app) error {
		t, ok := a.store.Table(name)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown table %q", name))
		}
		return writeRecords(cmd.OutOrStdout(), t.FindAll(cmd.Context(), where, opts.Include...))
	})
}
