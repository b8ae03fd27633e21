package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/wellness"
)

type (
	logFunc  func(ctx context.Context, a *app, userID int64) (recstore.Record, error)
	listFunc func(ctx context.Context, a *app, userID int64) []recstore.Record
)

// journalCommand builds a "<name> log|list" group for one per-user journal.
// The log subcommand's flags are registered by the caller through logFlags.
func journalCommand(rootOpts *RootOptions, name, short, logShort string, logFlags func(*cobra.Command), log logFunc, list listFunc) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.PersistentFlags().Int64Var(&userID, "user", 0, "owner user id")
	_ = cmd.MarkPersistentFlagRequired("user")

	logCmd := &cobra.Command{
		Use:          "log",
		Short:        logShort,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				rec, err := log(cmd.Context(), a, userID)
				if err != nil {
					return failed("log "+name, err)
				}
				return writeJSON(cmd.OutOrStdout(), rec)
			})
		},
	}
	logFlags(logCmd)

	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List entries, newest first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				return writeRecords(cmd.OutOrStdout(), list(cmd.Context(), a, userID))
			})
		},
	}

	cmd.AddCommand(logCmd, listCmd)
	return cmd
}

// NewMoodCommand creates the mood command group.
func NewMoodCommand(rootOpts *RootOptions) *cobra.Command {
	var in wellness.MoodInput

	return journalCommand(rootOpts, "mood", "Track moods", "Record a mood from 1 (sad) to 5 (happy)",
		func(cmd *cobra.Command) {
			cmd.Flags().Int64Var(&in.Score, "score", 0, "mood score 1-5")
			cmd.Flags().StringVar(&in.Note, "note", "", "note")
			cmd.Flags().StringVar(&in.Date, "date", "", "day (default today)")
			_ = cmd.MarkFlagRequired("score")
		},
		func(ctx context.Context, a *app, userID int64) (recstore.Record, error) {
			return a.service.LogMood(ctx, userID, in)
		},
		func(ctx context.Context, a *app, userID int64) []recstore.Record {
			return a.service.Moods(ctx, userID)
		},
	)
}

// NewHealthCommand creates the health command group.
func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		status, date        string
		weight, bmi         float64
		systolic, diastolic int64
	)

	return journalCommand(rootOpts, "health", "Track body measurements", "Record a measurement",
		func(cmd *cobra.Command) {
			cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
			cmd.Flags().Int64Var(&systolic, "systolic", 0, "systolic blood pressure")
			cmd.Flags().Int64Var(&diastolic, "diastolic", 0, "diastolic blood pressure")
			cmd.Flags().Float64Var(&bmi, "bmi", 0, "BMI (default computed from weight and profile height)")
			cmd.Flags().StringVar(&status, "status", "", "status note")
			cmd.Flags().StringVar(&date, "date", "", "day (default today)")
		},
		func(ctx context.Context, a *app, userID int64) (recstore.Record, error) {
			in := wellness.HealthInput{Status: status, Date: date}
			if weight > 0 {
				in.Weight = &weight
			}
			if systolic > 0 {
				in.BPSystolic = &systolic
			}
			if diastolic > 0 {
				in.BPDiastolic = &diastolic
			}
			if bmi > 0 {
				in.BMI = &bmi
			}
			return a.service.LogHealth(ctx, userID, in)
		},
		func(ctx context.Context, a *app, userID int64) []recstore.Record {
			return a.service.HealthHistory(ctx, userID)
		},
	)
}

// NewFocusCommand creates the focus command group.
func NewFocusCommand(rootOpts *RootOptions) *cobra.Command {
	var minutes int64

	return journalCommand(rootOpts, "focus", "Track focus sessions", "Record a completed focus session",
		func(cmd *cobra.Command) {
			cmd.Flags().Int64Var(&minutes, "minutes", 25, "session length in minutes")
		},
		func(ctx context.Context, a *app, userID int64) (recstore.Record, error) {
			return a.service.LogFocus(ctx, userID, minutes)
		},
		func(ctx context.Context, a *app, userID int64) []recstore.Record {
			return a.service.FocusHistory(ctx, userID)
		},
	)
}
