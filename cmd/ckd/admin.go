package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/spf13/cobra"
)

var errNotAdmin = errors.New("no admin session, run 'ckd admin login' first")

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator session and dashboard",
		Long:  `Log in as an administrator and read the dashboard statistics and registered users.`,
	}

	cmd.AddCommand(adminLoginCmd())
	cmd.AddCommand(adminSignupCmd())
	cmd.AddCommand(adminLogoutCmd())
	cmd.AddCommand(adminStatsCmd())
	cmd.AddCommand(adminUsersCmd())

	return cmd
}

func adminLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, email, password, _ := credentialFlags(cmd)
			creds, err := forms.ValidateLogin(email, password)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			account, token, err := e.client.AdminLogin(ctx, creds.Email, creds.Password)
			if err != nil {
				return fmt.Errorf("admin login failed: %w", err)
			}
			if err := e.ctrl.AdminLogin(ctx, account, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged in as administrator "+account.DisplayName()))
			return nil
		},
	}
	addCredentialFlags(cmd, false)
	return cmd
}

func adminSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an administrator account",
		Long:  `Register an administrator account. The service only accepts this with a valid admin registration code.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, email, password, confirm := credentialFlags(cmd)
			code, _ := cmd.Flags().GetString("admin-code")
			creds, err := forms.ValidateAdminSignup(name, email, password, confirm, code)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			account, token, err := e.client.AdminSignup(ctx, creds.Name, creds.Email, creds.Password, creds.AdminCode)
			if err != nil {
				return fmt.Errorf("admin signup failed: %w", err)
			}
			if err := e.ctrl.AdminSignup(ctx, account, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Administrator "+account.DisplayName()+" registered"))
			return nil
		},
	}
	addCredentialFlags(cmd, true)
	cmd.Flags().String("admin-code", "", "admin registration code")
	return cmd
}

func adminLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the administrator session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if !e.ctrl.Identity().IsAdmin() {
				return errNotAdmin
			}

			token := e.ctrl.Token()
			if err := e.ctrl.AdminLogout(ctx); err != nil {
				return err
			}
			e.client.Invalidate(token)
			if err := e.client.Logout(ctx, token); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Service logout failed: "+err.Error()))
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Administrator logged out"))
			return nil
		},
	}
}

func adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if !e.ctrl.Identity().IsAdmin() {
				return errNotAdmin
			}

			stats, err := e.client.Stats(ctx, e.ctrl.Token())
			if err != nil {
				return fmt.Errorf("failed to load statistics: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(cli.ChartIcon+" Dashboard Overview"))
			return cli.RenderStats(out, stats)
		},
	}
}

func adminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if !e.ctrl.Identity().IsAdmin() {
				return errNotAdmin
			}

			users, err := e.client.Users(ctx, e.ctrl.Token())
			if err != nil {
				return fmt.Errorf("failed to load users: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Registered Users (%d)", len(users))))
			return cli.RenderUsers(out, users)
		},
	}
}
