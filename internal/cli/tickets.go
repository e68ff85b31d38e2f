package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func (a *App) cmdTickets(ctx context.Context, args []string) int {
	if len(args) > 0 && args[0] == "return" {
		return a.cmdTicketsReturn(ctx, args[1:])
	}
	if len(args) > 0 && args[0] != "list" {
		fmt.Fprintf(a.Stderr, "trainctl: unknown tickets subcommand %q\n", args[0])
		return 2
	}

	if err := a.Tickets.Fetch(ctx); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Tickets.Snapshot().Error))
		return 1
	}

	state := a.Tickets.Snapshot()
	if len(state.Tickets) == 0 {
		fmt.Fprintln(a.Stdout, "You have no tickets yet.")
		return 0
	}

	rows := make([][]string, len(state.Tickets))
	for i, ticket := range state.Tickets {
		rows[i] = []string{
			ticket.ID.String(),
			ticket.Route.DisplayName(),
			ticket.FromStop.StationName + " → " + ticket.ToStop.StationName,
			formatDateTime(ticket.FromStop.DepartureDateTime),
			fmt.Sprintf("%d", ticket.SeatNumber),
			formatPrice(ticket.Price),
		}
	}
	fmt.Fprintln(a.Stdout, renderTable([]string{"ID", "Route", "Journey", "Departs", "Seat", "Price"}, rows))
	return 0
}

func (a *App) cmdTicketsReturn(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("tickets return", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	rawID := fs.String("id", "", "ticket id to return")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	id, err := uuid.Parse(*rawID)
	if err != nil {
		fmt.Fprintln(a.Stderr, "trainctl: --id must be a valid ticket id")
		return 2
	}

	if err := a.Tickets.Return(ctx, id); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Tickets.Snapshot().Error))
		return 1
	}
	fmt.Fprintln(a.Stdout, ok("Ticket returned."))
	return 0
}
