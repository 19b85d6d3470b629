package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mutix31/Sharebin/internal/client/api"
)

var getChoice = GetChoice

func (a *App) sharingOptions() (api.SharingOptions, error) {
	expires, err := getChoice(a.reader, "Expires in (1d, 5d, 1w, 1m, unlimited)", "unlimited", a.out)
	if err != nil {
		return api.SharingOptions{}, err
	}
	limit, err := getChoice(a.reader, "View limit (1, 10, unlimited)", "unlimited", a.out)
	if err != nil {
		return api.SharingOptions{}, err
	}
	return api.SharingOptions{ExpiresIn: expires, ViewLimit: limit}, nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}
	opts, err := a.sharingOptions()
	if err != nil {
		return err
	}

	n, err := a.api.CreateNote(ctx, title, content, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note %s created\nShare link: %s\n", n.ID, n.ShareURL)
	return nil
}

func (a *App) AddFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.IsDir() {
		return errors.New(path + " is a directory")
	}

	opts, err := a.sharingOptions()
	if err != nil {
		return err
	}

	art, err := a.api.UploadFile(ctx, filepath.Base(path), f, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "File %s uploaded (%s)\nShare link: %s\n", art.ID, formatSize(art.SizeBytes), art.ShareURL)
	return nil
}

func (a *App) Shorten(ctx context.Context, target string) error {
	u, err := a.api.Shorten(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Short link: %s\n", u.ShortURL)
	return nil
}
