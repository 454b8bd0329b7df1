package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Slganeshkarthik/AgriConnect/internal/app"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

func newSessionCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Sign in and out of the backend",
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Print the resolved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(_ context.Context, a *app.App) error {
				return printJSON(cmd, a.Session.Snapshot())
			})
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "End the backend session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return printJSON(cmd, a.Session.Logout(ctx))
			})
		},
	}

	cmd.AddCommand(
		whoami,
		newAuthCmd(c, "login", "Sign in with a username and password", func(ctx context.Context, a *app.App, cr domain.Credentials) domain.AuthResult {
			return a.Session.Login(ctx, cr)
		}),
		newAuthCmd(c, "signup", "Register and sign in", func(ctx context.Context, a *app.App, cr domain.Credentials) domain.AuthResult {
			return a.Session.Signup(ctx, cr)
		}),
		logout,
	)
	return cmd
}

type authFunc func(ctx context.Context, a *app.App, creds domain.Credentials) domain.AuthResult

func newAuthCmd(c *cli, use, short string, fn authFunc) *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				res := fn(ctx, a, creds)
				if err := printJSON(cmd, res); err != nil {
					return err
				}
				if !res.OK {
					return errors.New(res.Message)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
