package main

import (
	"context"
	"fmt"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignup registers the local account slot.
//
// Signing up again overwrites the previous registration. The new account
// still has to log in before browsing.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	user := models.User{
		FullName: cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if err := r.sessions.Signup(user); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	r.logger.Info("account registered", "email", user.Email)

	r.writePlain("✓ Account created for %s\n", user.Email)
	r.writePlain("Run 'myflix auth login' to start browsing.\n")
	return nil
}

// AuthLogin checks the credentials against the registered account and mints a session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	email := cmd.String("email")
	if err := r.sessions.Login(email, cmd.String("password")); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, _ := r.sessions.Current()
	r.logger.Info("logged in", "email", user.Email)

	r.writePlain("✓ Welcome back, %s\n", user.FullName)
	return nil
}

// AuthLogout clears the session. Logging out while logged out is not an error.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	r.sessions.Logout()
	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthWhoami reports the current session state.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	user, ok := r.sessions.Current()
	if cmd.Bool("json") {
		if !ok {
			return r.writeJSON(map[string]any{"authenticated": false}, true)
		}
		return r.writeJSON(map[string]any{
			"authenticated": true,
			"fullName":      user.FullName,
			"email":         user.Email,
		}, true)
	}

	if !ok {
		r.writePlain("Not logged in\n")
		return nil
	}

	r.writePlain("Logged in as %s <%s>\n", user.FullName, user.Email)
	return nil
}
