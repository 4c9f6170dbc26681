package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"course-catalog/internal/accounts"
	"course-catalog/internal/dashboard"
	"course-catalog/internal/query"
)

func newUsersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users, register and log in",
	}
	cmd.AddCommand(newUsersListCommand(opts), newRegisterCommand(opts), newLoginCommand(opts))
	return cmd
}

func newUsersListCommand(opts *RootOptions) *cobra.Command {
	var f query.UserFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.Users(ctx, f)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	cmd.Flags().StringVar(&f.Email, "email", "", "exact email")
	return cmd
}

// errOutcome turns a failed Outcome into a command error after printing it.
var errOutcome = errors.New("request rejected")

func printOutcome(cmd *cobra.Command, opts *RootOptions, out accounts.Outcome) error {
	if err := printProjected(cmd, opts, out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("%w: %s", errOutcome, out.Error)
	}
	return nil
}

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var in accounts.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				return printOutcome(cmd, opts, accounts.New(a.svc, a.log).Register(ctx, in))
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name, defaults to the email's local part")
	cmd.Flags().StringVar(&in.Bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&in.Avatar, "avatar", "", "avatar URL")
	cmd.Flags().StringSliceVar(&in.Interests, "interests", nil, "comma separated interests")
	return cmd
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				return printOutcome(cmd, opts, accounts.New(a.svc, a.log).Login(ctx, email, password))
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newEnrollCommand(opts *RootOptions) *cobra.Command {
	var userID, courseID int
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a user in a course; existing enrollments are returned as is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.Enroll(ctx, userID, courseID)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "user id")
	cmd.Flags().IntVar(&courseID, "course", 0, "course id")
	return cmd
}

func newEnrollmentsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrollments",
		Short: "List enrollments and record progress",
	}

	var f query.EnrollmentFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List enrollments, optionally by user and course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.Enrollments(ctx, f)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	list.Flags().IntVar(&f.UserID, "user", 0, "user id")
	list.Flags().IntVar(&f.CourseID, "course", 0, "course id")

	progress := &cobra.Command{
		Use:   "progress <enrollment-id> <percent>",
		Short: "Set the progress of one enrollment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("cli: enrollment id %q: %w", args[0], err)
			}
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cli: percent %q: %w", args[1], err)
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				e, err := dashboard.New(a.svc, a.log).SetProgress(ctx, id, pct)
				if err != nil {
					return err
				}
				return printProjected(cmd, opts, e)
			})
		},
	}

	cmd.AddCommand(list, progress)
	return cmd
}

func newDashboardCommand(opts *RootOptions) *cobra.Command {
	var userID int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a user's courses and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				v, err := dashboard.New(a.svc, a.log).Load(ctx, userID)
				if err != nil {
					return err
				}
				return printProjected(cmd, opts, v)
			})
		},
	}
	cmd.Flags().IntVar(&userID, "user", 1, "user id")
	return cmd
}
