package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Show opens a note and prints it. Every call counts as a view.
func (a *App) Show(ctx context.Context, id string) error {
	n, err := a.api.ReadNote(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n(by %s, views %s, expires %s)\n\n%s\n",
		n.Title, n.OwnerName, formatViews(n.ViewCount, n.ViewLimit), formatExpiry(n.ExpiresAt), n.Content)
	return nil
}

// Get downloads a file to dest. An empty dest or a directory means the
// shared file name in that directory. Existing files are never overwritten.
func (a *App) Get(ctx context.Context, id, dest string) error {
	f, err := a.api.ReadFile(ctx, id)
	if err != nil {
		return err
	}

	name := filepath.Base(f.FileName)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		name = "download"
	}
	if dest == "" {
		dest = name
	} else if st, err := os.Stat(dest); err == nil && st.IsDir() {
		dest = filepath.Join(dest, name)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	n, err := a.api.Download(ctx, f.DownloadURL, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s to %s\n", formatSize(n), dest)
	return nil
}
