// Package cli implements the trainctl commands. Each command parses its own
// flags, runs input through the validation engine, dispatches to the entity
// stores, and renders the resulting state. Commands never talk to the API
// client directly.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fake-oleg29/train-schedule-cli/internal/session"
	"github.com/fake-oleg29/train-schedule-cli/internal/store"
)

// App bundles the stores and output streams the commands operate on.
type App struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Sessions *session.Store
	Auth     *store.AuthStore
	Trains   *store.TrainStore
	Routes   *store.RouteStore
	Tickets  *store.TicketStore
}

const usage = `trainctl - booking client for the train schedule service

Usage:
  trainctl login --email <email> --password <password>
  trainctl register --name <name> --email <email> --password <password>
  trainctl logout
  trainctl whoami
  trainctl search --from <station> --to <station> --date <YYYY-MM-DD>
  trainctl book --from <station> --to <station> --date <YYYY-MM-DD> [--route <id>]... [--all]
  trainctl tickets
  trainctl tickets return --id <id>
  trainctl trains list|create|update|delete [flags]
  trainctl routes list|create [flags]

Environment:
  API_URL, LOG_LEVEL, SESSION_FILE, HTTP_TIMEOUT_SECONDS (see .env support)
`

// Run dispatches a command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "logout":
		return a.cmdLogout(args[1:])
	case "whoami":
		return a.cmdWhoami(ctx, args[1:])
	case "search":
		return a.cmdSearch(ctx, args[1:])
	case "book":
		return a.cmdBook(ctx, args[1:])
	case "tickets":
		return a.cmdTickets(ctx, args[1:])
	case "trains":
		return a.cmdTrains(ctx, args[1:])
	case "routes":
		return a.cmdRoutes(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.Stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.Stderr, "trainctl: unknown command %q\n\n", args[0])
		fmt.Fprint(a.Stderr, usage)
		return 2
	}
}

// requireAdmin prints the advisory role warning for admin commands. It never
// blocks: authorization is enforced server-side, the warning only saves a
// round trip's worth of confusion.
func (a *App) requireAdmin() {
	if !a.Sessions.IsAdmin() {
		fmt.Fprintln(a.Stderr, warn("You are not signed in as an administrator; the server will reject this operation."))
	}
}
