package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"eventtracker/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// fail turns err into a user-facing banner. Gateway auth failures first go
// through the session controller, which ends the session; everything else is
// shown with as much of the backend's own wording as we have.
func (a *App) fail(ctx context.Context, err error) {
	if a.session.HandleAuthError(ctx, err) {
		a.banner.Show("Session expired, please log in again")
		return
	}

	var valErr *api.ValidationError
	var apiErr *api.APIError
	var transErr *api.TransportError
	switch {
	case errors.As(err, &valErr):
		a.banner.Show(valErr.Message)
	case errors.As(err, &apiErr) && apiErr.Message != "":
		a.banner.Show(apiErr.Message)
	case errors.As(err, &transErr):
		a.banner.Show("Server unreachable, try again")
	default:
		a.banner.Show(err.Error())
	}
	a.log.Debug(ctx, "command failed", "err", err)
}

// Login prompts for credentials and authenticates. All rejection shapes are
// shown as the same uniform message.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		a.fail(ctx, err)
		return err
	}

	a.banner.Clear()
	if id, ok := a.session.Identity(); ok {
		printlnFn(fmt.Sprintf("Welcome, %s!", id.Username))
	}
	return nil
}

// Register prompts for account details and creates the account. Success
// refers the user to login rather than starting a session.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, username, email, password); err != nil {
		a.fail(ctx, err)
		return err
	}

	printlnFn("Account created, you can now log in.")
	return nil
}

// Logout ends the session; mirrors are discarded by the session-end hook.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.fail(ctx, err)
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the resolved identity.
func (a *App) WhoAmI(ctx context.Context) error {
	if id, ok := a.session.Identity(); ok {
		printlnFn("Logged in as " + id.Username)
	} else {
		printlnFn("Not logged in.")
	}
	return nil
}
