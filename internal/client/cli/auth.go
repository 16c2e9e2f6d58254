package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/transkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) askCredentials() (string, []byte, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

// Register prompts for a username and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	username, password, err := a.askCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can login now")
	return nil
}

// Login prompts for credentials and starts a session. A previous session
// is replaced.
func (a *App) Login(ctx context.Context) error {
	username, password, err := a.askCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Logged in as %s\n", sess.Username)
	return nil
}

// Logout ends the session locally even when the server cannot revoke it.
func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.session = nil
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Delete removes username, or the logged in account when username is empty
// or names it. Deleting yourself ends the session.
func (a *App) Delete(ctx context.Context, username string) error {
	self := username == "" || username == a.session.Username
	target := username
	if self {
		target = a.session.Username
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete account %s and its whole history? (y/N)", target), a.out)
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if self {
		target = ""
	}
	if err := a.client.DeleteAccount(ctx, target); err != nil {
		return err
	}

	if self {
		a.session = nil
		_ = a.client.Logout(ctx)
		fmt.Fprintln(a.out, "Your account was deleted")
		return nil
	}
	fmt.Fprintf(a.out, "Account %s deleted\n", username)
	return nil
}
