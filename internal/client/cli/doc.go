// Package cli provides the interactive sharebin command-line client.
//
// It wires configuration and the HTTP API client into a small REPL. A
// typical session registers or logs in, then shares notes, files and short
// links and manages what was shared.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Share notes, files and short URLs with expiry and view limits
//   - Open notes and download files by id, logged in or not
//   - List and delete own items; admins can list everything and manage users
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
