package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for a user name, password and role and creates the
// identity. The password slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Enter role (Student or Instructor)", a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.Register(ctx, userName, password, role); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "User registered successfully")
	return nil
}

// Login prompts for credentials and caches the issued assertion.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.Login(ctx, userName, password); err != nil {
		a.report(err)
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// WhoAmI prints the subject and role the identity service sees in the
// cached assertion.
func (a *App) WhoAmI(ctx context.Context) error {
	name, p, err := a.sessions.WhoAmI(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "%s: user_id=%s scope=%s\n", name, p.SubjectID, p.Role)
	return nil
}

// Logout forgets the cached assertion.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	return nil
}
