package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Users prints every account. Admin only.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

// Rename changes the display name of the logged-in user.
func (a *App) Rename(ctx context.Context, name string) error {
	u, err := a.api.UpdateUser(ctx, a.identity.UserID, name, "")
	if err != nil {
		return err
	}
	a.identity.Name = u.Name
	fmt.Fprintf(a.out, "Display name is now %s\n", u.Name)
	return nil
}

func (a *App) SetRole(ctx context.Context, userID, role string) error {
	u, err := a.api.UpdateUser(ctx, userID, "", role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", u.Email, u.Role)
	return nil
}
