package cli

import (
	"context"
	"fmt"
)

func (a *App) Delete(ctx context.Context, kind, id string) error {
	if err := a.api.Delete(ctx, kind, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
