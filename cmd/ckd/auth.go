package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/ckd-predict/internal/cli"
	"github.com/Veraticus/ckd-predict/internal/forms"
	"github.com/spf13/cobra"
)

// errNotLoggedIn is returned by commands that need a user session.
var errNotLoggedIn = errors.New("not logged in, run 'ckd login' first")

func addCredentialFlags(cmd *cobra.Command, signup bool) {
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	if signup {
		cmd.Flags().String("name", "", "full name")
		cmd.Flags().String("confirm", "", "password confirmation (defaults to --password)")
	}
}

// credentialFlags reads the credential flags; an empty --confirm repeats --password.
func credentialFlags(cmd *cobra.Command) (name, email, password, confirm string) {
	name, _ = cmd.Flags().GetString("name")
	email, _ = cmd.Flags().GetString("email")
	password, _ = cmd.Flags().GetString("password")
	confirm, _ = cmd.Flags().GetString("confirm")
	if !cmd.Flags().Changed("confirm") {
		confirm = password
	}
	return name, email, password, confirm
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a user",
		Long:  `Log in with your email and password. The session is stored locally and reused by later commands.`,
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

			account, token, err := e.client.Login(ctx, creds.Email, creds.Password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := e.ctrl.Login(ctx, account, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged in as "+account.DisplayName()))
			return nil
		},
	}
	addCredentialFlags(cmd, false)
	return cmd
}

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user account",
		Long:  `Register a new user account and log in with it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := forms.ValidateSignup(credentialFlags(cmd))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			account, token, err := e.client.Signup(ctx, creds.Name, creds.Email, creds.Password)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			if err := e.ctrl.Signup(ctx, account, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Welcome, "+account.DisplayName()))
			return nil
		},
	}
	addCredentialFlags(cmd, true)
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the user session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if !e.ctrl.Identity().IsUser() {
				return errNotLoggedIn
			}

			token := e.ctrl.Token()
			if err := e.ctrl.Logout(ctx); err != nil {
				return err
			}
			if err := e.client.Logout(ctx, token); err != nil {
				// The local session is already gone.
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Service logout failed: "+err.Error()))
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show who is logged in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			verify, _ := cmd.Flags().GetBool("verify")

			ctx := cmd.Context()
			e, err := newEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			id := e.ctrl.Identity()
			if id.IsAnonymous() {
				fmt.Fprintln(out, cli.FormatInfo("Not logged in"))
				return nil
			}

			fmt.Fprintf(out, "%s %s <%s> (%s)\n", cli.UserIcon, id.Account.DisplayName(), id.Account.Email, id.Role)

			if verify {
				if _, err := e.client.Verify(ctx, e.ctrl.Token()); err != nil {
					return fmt.Errorf("token rejected: %w", err)
				}
				fmt.Fprintln(out, cli.FormatSuccess("Token is valid"))
			}
			return nil
		},
	}
	cmd.Flags().Bool("verify", false, "check the stored token with the service")
	return cmd
}
