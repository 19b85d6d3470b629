// Command seed provisions the first admin account. It creates the user, or
// promotes an existing one, directly against the configured object store.
//
// Usage:
//
//	seed -admin-email root@example.com [-admin-name Root] [-k postgres -d DSN ...]
//
// The password is read from SHAREBIN_ADMIN_PASSWORD or prompted for on the
// terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mutix31/Sharebin/internal/flagx"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
	"github.com/mutix31/Sharebin/internal/server/services"
)

const passwordEnv = "SHAREBIN_ADMIN_PASSWORD"

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	email := fs.String("admin-email", "", "admin email")
	name := fs.String("admin-name", "", "admin display name")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-admin-email", "-admin-name"}))

	if cfg.Storage == config.StorageMemory {
		log.Fatal("seeding the in-memory store has no effect; choose -k s3 or -k postgres")
	}

	password, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		log.Fatalf("password: %v", err)
	}

	store, closeFn, err := server.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFn()

	if err := run(ctx, cfg, store, *name, *email, password, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, store objectstore.Store, name, email, password string, out io.Writer) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("-admin-email is required")
	}

	logger := logging.NewJSONLogger(os.Stderr, slog.LevelWarn)
	rm, err := repomanager.NewObjectStoreManager(store, logger)
	if err != nil {
		return err
	}
	ss := services.NewSessionService(rm, cfg, logger)
	us := services.NewUserService(rm, ss, logger)

	user, created, err := us.ProvisionAdmin(ctx, name, email, password)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "created admin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(out, "promoted %s (%s) to admin\n", user.Email, user.ID)
	}
	return nil
}

func readPassword(in *os.File, prompt io.Writer) (string, error) {
	if p, ok := os.LookupEnv(passwordEnv); ok {
		return p, nil
	}

	if term.IsTerminal(int(in.Fd())) {
		fmt.Fprint(prompt, "Admin password: ")
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
