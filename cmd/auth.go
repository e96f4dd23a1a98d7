package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with username/password, persists the token, and prints
// the resolved principal.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("signing in", "username", username)

	user, err := r.api.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Signed in as %s (%s)\n", user.DisplayName(), user.Email)
}

// AuthRegister creates a new account.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	req := services.RegisterRequest{
		Username: cmd.String("username"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
		FullName: cmd.String("full-name"),
	}

	user, err := r.api.Auth.Register(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created: %s\n", user.Username)
	return r.writePlain("Run 'wayfarer auth login -u %s -p <password>' to sign in\n", user.Username)
}

// AuthLogout invalidates the session and erases the persisted token. Any
// live generation trackers are cancelled first.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.tracker.CancelAll()

	if err := r.api.Auth.Logout(ctx); err != nil {
		r.logger.Warn("server-side logout failed", "error", err)
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami resolves and prints the current session.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	session, err := services.InitSession(ctx, r.api, r.creds)
	if err != nil {
		return err
	}

	if !session.Authenticated() {
		return r.writePlain("✗ Not signed in\n")
	}

	user := session.Principal
	r.writePlain("✓ Signed in as %s\n", user.DisplayName())
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Role: %s\n", user.Role)
	return nil
}

// AuthRefresh exchanges the current token for a fresh one.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.creds.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	return r.writePlain("✓ Token refreshed\n")
}

// AuthResetPassword requests a password-reset email.
func (r *Runner) AuthResetPassword(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if err := r.api.Auth.ResetPassword(ctx, email); err != nil {
		return err
	}
	return r.writePlain("✓ Reset email sent to %s\n", email)
}

// AuthChangePassword changes the current account's password.
func (r *Runner) AuthChangePassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.api.Auth.ChangePassword(ctx, cmd.String("old"), cmd.String("new")); err != nil {
		return err
	}
	return r.writePlain("✓ Password changed\n")
}
