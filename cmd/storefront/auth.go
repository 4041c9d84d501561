package main

import (
	"fmt"

	"storefront/internal/access"
	"storefront/internal/model"

	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var creds model.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(access.RoutePublicOnly); err != nil {
				return err
			}
			if err := a.session.Login(cmd.Context(), creds); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			user := a.session.CurrentUser()
			fmt.Printf("Signed in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var data model.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(access.RoutePublicOnly); err != nil {
				return err
			}
			if err := a.session.Register(cmd.Context(), data); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			user := a.session.CurrentUser()
			fmt.Printf("Welcome, %s %s\n", user.FirstName, user.LastName)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&data.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&data.Email, "email", "", "account email")
	cmd.Flags().StringVar(&data.Password, "password", "", "account password")
	cmd.Flags().StringVar(&data.ConfirmPassword, "confirm-password", "", "repeat the password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Run: func(cmd *cobra.Command, args []string) {
			a.session.Logout()
			fmt.Println("Signed out")
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				user, err := a.auth.Me(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch profile: %w", err)
				}
				fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
				return nil
			}
			user := a.session.CurrentUser()
			if user == nil {
				fmt.Println("Browsing as guest")
				return nil
			}
			fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the profile from the backend")
	return cmd
}
