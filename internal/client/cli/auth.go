package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/musicvideos/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getNewPassword = GetNewPassword

// Register prompts for username, email and password and creates an account.
// It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getNewPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	id, err := a.sessions.Register(callCtx, userName, email, password)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Registered user %s (id %d), you can log in now\n", userName, id)
	return nil
}

// Login prompts for credentials, authenticates and saves the session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	s, err := a.sessions.Login(callCtx, userName, password)
	if err != nil {
		return a.report(ctx, err)
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s, session valid until %s\n", s.Username, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// Profile prints the logged-in user's account as stored on the server.
func (a *App) Profile(ctx context.Context) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.sessions.Profile(callCtx)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "User:         %s (id %d)\n", p.Username, p.UserID)
	fmt.Fprintf(a.out, "Email:        %s\n", p.Email)
	fmt.Fprintf(a.out, "Member since: %s\n", p.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

// Logout revokes the token on the server and forgets the local session.
func (a *App) Logout(ctx context.Context) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.sessions.Logout(callCtx); err != nil {
		fmt.Fprintf(a.out, "Logged out locally, server said: %s\n", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}
