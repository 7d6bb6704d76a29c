package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"adminpro/console/internal/jobs"
	"adminpro/console/internal/security"
)

func (a *app) sendOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-otp <mobile>",
		Short: "Request a one-time password for a mobile number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.store.SendOTP(cmd.Context(), args[0])
			if !result.Success {
				return fmt.Errorf("send otp: %s", result.Error)
			}
			fmt.Println("OTP sent")
			return nil
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <mobile> <otp>",
		Short: "Verify an OTP and start a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.store.Login(cmd.Context(), args[0], args[1])
			if !result.Success {
				return fmt.Errorf("login: %s", result.Error)
			}
			state := a.store.State()
			fmt.Printf("logged in as %s (%s), landing: %s\n", state.User.Name, state.User.Role, result.Route)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := a.store.Logout(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println("logged out, back to", route)
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.store.State()
			if !state.Authenticated {
				fmt.Println("not logged in")
				return nil
			}

			if err := printJSON(state.User); err != nil {
				return err
			}

			token, err := a.keys.ReadToken(cmd.Context())
			if err != nil || token == "" {
				return nil
			}
			if claims, err := security.InspectToken(token); err == nil && !claims.ExpiresAt.IsZero() {
				fmt.Println("token expires:", claims.ExpiresAt.Local())
			}
			return nil
		},
	}
}

// watch keeps a console process resident: it re-hydrates on out-of-process
// key changes and runs the expiry janitor, so a logout elsewhere or a lapsed
// TTL is noticed without user interaction.
func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow session state until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			janitor := jobs.NewJanitor(a.store, a.cfg.Janitor.Schedule, a.log)
			if a.cfg.Janitor.Enabled {
				if err := janitor.Start(); err != nil {
					return err
				}
				defer janitor.Stop()
			}

			go func() {
				_ = a.store.Watch(ctx)
			}()

			id, signals := a.store.Subscribe()
			defer a.store.Unsubscribe(id)

			fmt.Fprintln(os.Stderr, "watching session state; ctrl-c to exit")
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-signals:
					state := a.store.State()
					if state.Authenticated {
						fmt.Printf("session active: %s\n", state.User.Email)
					} else {
						fmt.Println("session ended")
					}
				}
			}
		},
	}
}
