package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mutix31/Sharebin/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	AddNote(ctx context.Context) error
	AddFile(ctx context.Context, path string) error
	Shorten(ctx context.Context, target string) error
	List(ctx context.Context, kind string, all bool) error
	Show(ctx context.Context, id string) error
	Get(ctx context.Context, id, dest string) error
	Delete(ctx context.Context, kind, id string) error
	Users(ctx context.Context) error
	Rename(ctx context.Context, name string) error
	SetRole(ctx context.Context, userID, role string) error
}

// needsLogin lists commands that are refused before login.
var needsLogin = map[string]bool{
	"logout": true, "addnote": true, "addfile": true, "shorten": true,
	"list": true, "l": true, "delete": true, "users": true, "rename": true, "setrole": true,
}

// runREPL reads commands from reader until EOF, "exit" or "quit", and
// dispatches them to a. Command errors are printed and the loop goes on.
//
// Commands
//
//	Any time:
//	  - help                            show available commands
//	  - show <note-id>                  open a note (counts a view)
//	  - get <file-id> [dest]            download a file (counts a view)
//	  - whoami                          show the current session
//	  - exit | quit                     leave the program
//
//	Not logged in:
//	  - register, login
//
//	Logged in:
//	  - addnote                         share a note
//	  - addfile <path>                  share a file
//	  - shorten <url>                   create a short link
//	  - list [files|notes|urls] [all]   list own items, or everything (admin)
//	  - delete <files|notes|urls> <id>  delete an item
//	  - users                           list users (admin)
//	  - rename <name>                   change display name
//	  - setrole <user-id> <user|admin>  change a role (admin)
//	  - logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sharebin%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: addnote, addfile, shorten, (l)ist, show, get, delete, users, rename, setrole, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, show, get, whoami, exit")
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "addnote":
			report(a.AddNote(ctx))

		case "addfile":
			if len(args) != 1 {
				printlnFn("Usage: addfile <path>")
				continue
			}
			report(a.AddFile(ctx, args[0]))

		case "shorten":
			if len(args) != 1 {
				printlnFn("Usage: shorten <url>")
				continue
			}
			report(a.Shorten(ctx, args[0]))

		case "l", "list":
			kind, all := "files", false
			for _, arg := range args {
				switch arg {
				case "all":
					all = true
				case "files", "notes", "urls":
					kind = arg
				default:
					printlnFn("Usage: list [files|notes|urls] [all]")
					kind = ""
				}
			}
			if kind != "" {
				report(a.List(ctx, kind, all))
			}

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <note-id>")
				continue
			}
			report(a.Show(ctx, args[0]))

		case "get":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: get <file-id> [dest]")
				continue
			}
			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}
			report(a.Get(ctx, args[0], dest))

		case "delete":
			if len(args) != 2 {
				printlnFn("Usage: delete <files|notes|urls> <id>")
				continue
			}
			report(a.Delete(ctx, args[0], args[1]))

		case "users":
			report(a.Users(ctx))

		case "rename":
			if len(args) == 0 {
				printlnFn("Usage: rename <name>")
				continue
			}
			report(a.Rename(ctx, strings.Join(args, " ")))

		case "setrole":
			if len(args) != 2 {
				printlnFn("Usage: setrole <user-id> <user|admin>")
				continue
			}
			report(a.SetRole(ctx, args[0], args[1]))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, api.ErrGone):
		printlnFn("This item has expired or reached its view limit")
	default:
		printlnFn("Error:", err.Error())
	}
}
