package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mutix31/Sharebin/internal/client/api"
	"github.com/mutix31/Sharebin/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	identity *api.Identity
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to sharebin CLI, connected to %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.identity != nil
}

func (a *App) getStatus() string {
	if a.identity == nil {
		return ""
	}
	if a.identity.Role == "admin" {
		return fmt.Sprintf(" (%s, admin)", a.identity.Name)
	}
	return fmt.Sprintf(" (%s)", a.identity.Name)
}
