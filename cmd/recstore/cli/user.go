package cli

import (
	"github.com/spf13/cobra"

	"github.com/routinerocket/recstore/wellness"
)

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserRegisterCommand(rootOpts))
	cmd.AddCommand(newUserVerifyCommand(rootOpts))
	cmd.AddCommand(newUserLoginCommand(rootOpts))
	cmd.AddCommand(newUserProfileCommand(rootOpts))
	cmd.AddCommand(newUserPasswordCommand(rootOpts))
	return cmd
}

func newUserRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var r wellness.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an unverified account and send its verification code",
		Long: `Create an unverified account. The verification code is sent through
the configured mailer; without one it is written to the log.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				user, err := a.service.Register(cmd.Context(), r)
				if err != nil {
					return failed("register", err)
				}
				return writeJSON(cmd.OutOrStdout(), user)
			})
		},
	}

	cmd.Flags().StringVar(&r.Username, "username", "", "display name")
	cmd.Flags().StringVar(&r.Email, "email", "", "email address")
	cmd.Flags().StringVar(&r.Password, "password", "", "password")
	cmd.Flags().StringVar(&r.Dob, "dob", "", "date of birth")
	cmd.Flags().StringVar(&r.Gender, "gender", "", "gender")
	return cmd
}

func newUserVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var email, otp string

	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Verify an account with its emailed code",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				user, err := a.service.VerifyOTP(cmd.Context(), email, otp)
				if err != nil {
					return failed("verify", err)
				}
				return writeJSON(cmd.OutOrStdout(), user)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&otp, "otp", "", "verification code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("otp")
	return cmd
}

func newUserLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:          "login",
		Short:        "Check credentials and print the account",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				user, err := a.service.Login(cmd.Context(), email, password)
				if err != nil {
					return failed("login", err)
				}
				return writeJSON(cmd.OutOrStdout(), user)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserProfileCommand(rootOpts *RootOptions) *cobra.Command {
	var userID int64
	var u wellness.ProfileUpdate

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update a profile",
		Long: `Show a profile. With any update flag set, the profile is updated first.

Examples:
  recstore user profile --user 1
  recstore user profile --user 1 --height 180 --weight 75.5 --theme dark`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				ctx := cmd.Context()
				if u != (wellness.ProfileUpdate{}) {
					if _, err := a.service.UpdateProfile(ctx, userID, u); err != nil {
						return failed("update profile", err)
					}
				}
				p, err := a.service.Profile(ctx, userID)
				if err != nil {
					return failed("profile", err)
				}
				if p.Birthday {
					if err := a.service.SendBirthdayWish(ctx, userID); err != nil {
						a.logger.Warn("birthday email failed", "user", userID, "error", err)
					}
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"user":     p.User,
					"birthday": p.Birthday,
				})
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().Int64Var(&u.Age, "age", 0, "age")
	cmd.Flags().StringVar(&u.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&u.Username, "username", "", "display name")
	cmd.Flags().StringVar(&u.Theme, "theme", "", "UI theme (light|dark)")
	cmd.Flags().StringVar(&u.ProfilePicture, "picture", "", "profile picture URL")
	cmd.Flags().Float64Var(&u.Height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&u.Weight, "weight", 0, "weight in kg")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newUserPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	var userID int64
	var current, next string

	cmd := &cobra.Command{
		Use:          "passwd",
		Short:        "Change a password",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(a *app) error {
				if err := a.service.ChangePassword(cmd.Context(), userID, current, next); err != nil {
					return failed("change password", err)
				}
				_, err := cmd.OutOrStdout().Write([]byte("password changed\n"))
				return err
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
