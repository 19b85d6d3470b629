package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mutix31/Sharebin/internal/client/api"
	"github.com/mutix31/Sharebin/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a display name, email and password and creates an
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name (empty to derive from email)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s <%s>, you can log in now\n", u.Name, u.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.identity = id
	fmt.Fprintf(a.out, "Logged in as %s\n", id.Name)
	return nil
}

// Logout forgets the local identity even when the server call fails; the
// session then simply expires server-side.
func (a *App) Logout(ctx context.Context) error {
	a.identity = nil
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI asks the server who the session belongs to and refreshes the
// cached identity, which picks up renames and role changes.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.api.Session(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		a.identity = nil
		return api.ErrNotLoggedIn
	}
	if err != nil {
		return err
	}
	a.identity = id
	fmt.Fprintf(a.out, "%s <%s>, role %s\n", id.Name, id.Email, id.Role)
	return nil
}
