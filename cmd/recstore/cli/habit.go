package cli

import (
	"github.com/spf13/cobra"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/wellness"
)

// NewHabitCommand creates the habit command group.
func NewHabitCommand(rootOpts *RootOptions) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits and their daily logs",
	}
	cmd.PersistentFlags().Int64Var(&userID, "user", 0, "owner user id")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(newHabitAddCommand(rootOpts, &userID))
	cmd.AddCommand(newHabitListCommand(rootOpts, &userID))
	cmd.AddCommand(newHabitDeleteCommand(rootOpts, &userID))
	cmd.AddCommand(newHabitLogCommand(rootOpts, &userID))
	cmd.AddCommand(newHabitHistoryCommand(rootOpts, &userID))
	return cmd
}

func newHabitAddCommand(rootOpts *RootOptions, userID *int64) *cobra.Command {
	var in wellness.HabitInput

	cmd := &cobra.Command{
		Use:          "add <name>",
		Short:        "Add a habit",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				habit, err := a.service.CreateHabit(cmd.Context(), *userID, in)
				if err != nil {
					return failed("add habit", err)
				}
				return writeJSON(cmd.OutOrStdout(), habit)
			})
		},
	}

	cmd.Flags().StringVar(&in.Category, "category", "", "category (default General)")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	return cmd
}

func newHabitListCommand(rootOpts *RootOptions, userID *int64) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List habits with their logs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				return writeRecords(cmd.OutOrStdout(), a.service.ListHabits(cmd.Context(), *userID))
			})
		},
	}
}

func newHabitDeleteCommand(rootOpts *RootOptions, userID *int64) *cobra.Command {
	return &cobra.Command{
		Use:          "delete <habit-id>",
		Short:        "Delete a habit and its logs",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				if err := a.service.DeleteHabit(cmd.Context(), *userID, args[0]); err != nil {
					return failed("delete habit", err)
				}
				_, err := cmd.OutOrStdout().Write([]byte("habit deleted\n"))
				return err
			})
		},
	}
}

func newHabitLogCommand(rootOpts *RootOptions, userID *int64) *cobra.Command {
	var in wellness.HabitLogInput
	var notDone bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Mark a habit done for a day",
		Long: `Mark a habit done (or not done with --not-done) for a day. Logging the
same habit and day again updates the existing log.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Status = !notDone
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				log, err := a.service.LogHabit(cmd.Context(), *userID, in)
				if err != nil {
					return failed("log habit", err)
				}
				return writeJSON(cmd.OutOrStdout(), log)
			})
		},
	}

	cmd.Flags().Int64Var(&in.HabitID, "habit", 0, "habit id")
	cmd.Flags().StringVar(&in.Date, "date", "", "day (default today)")
	cmd.Flags().BoolVar(&notDone, "not-done", false, "record the habit as missed")
	_ = cmd.MarkFlagRequired("habit")
	return cmd
}

type habitHistoryRow struct {
	Log   recstore.Record `json:"log"`
	Habit recstore.Record `json:"habit"`
}

func newHabitHistoryCommand(rootOpts *RootOptions, userID *int64) *cobra.Command {
	return &cobra.Command{
		Use:          "history",
		Short:        "Show recent habit logs, newest first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				entries := a.service.HabitHistory(cmd.Context(), *userID)
				rows := make([]habitHistoryRow, len(entries))
				for i, e := range entries {
					rows[i] = habitHistoryRow{Log: e.Log, Habit: e.Habit}
				}
				return writeJSON(cmd.OutOrStdout(), rows)
			})
		},
	}
}
