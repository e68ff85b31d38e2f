package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
	"github.com/fake-oleg29/train-schedule-cli/internal/store"
	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

func (a *App) cmdSearch(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	from := fs.String("from", "", "departure station")
	to := fs.String("to", "", "arrival station")
	date := fs.String("date", "", "travel date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	criteria, issues := validate.SearchForm{From: *from, To: *to, Date: *date}.Validate()
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	if err := a.Routes.Search(ctx, criteria); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Routes.Snapshot().Error))
		return 1
	}

	state := a.Routes.Snapshot()
	if len(state.Routes) == 0 {
		fmt.Fprintln(a.Stdout, "No routes found for the given criteria.")
		return 0
	}

	plural := ""
	if len(state.Routes) != 1 {
		plural = "s"
	}
	fmt.Fprintf(a.Stdout, "Found %d route%s\n", len(state.Routes), plural)
	fmt.Fprintln(a.Stdout, routesTable(state.Routes))
	return 0
}

// routesTable renders search results one row per route.
func routesTable(routes []domain.Route) string {
	rows := make([][]string, len(routes))
	for i, route := range routes {
		trainNumber, seats := "N/A", "0"
		if route.Train != nil {
			trainNumber = route.Train.TrainNumber
			seats = fmt.Sprintf("%d", route.Train.TotalSeats)
		}
		rows[i] = []string{
			route.ID.String(),
			trainNumber,
			route.DisplayName(),
			formatDateTime(route.StartStation.DepartureDateTime),
			route.Duration.Display(),
			seats,
			formatPrice(route.TicketPrice),
		}
	}
	return renderTable([]string{"ID", "Train", "Route", "Departs", "Duration", "Seats", "Price"}, rows)
}

func (a *App) cmdBook(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("book", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	from := fs.String("from", "", "departure station")
	to := fs.String("to", "", "arrival station")
	date := fs.String("date", "", "travel date (YYYY-MM-DD)")
	routeIDs := fs.StringArray("route", nil, "route id to book (repeatable)")
	all := fs.Bool("all", false, "book every matching route")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	criteria, issues := validate.SearchForm{From: *from, To: *to, Date: *date}.Validate()
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}
	if len(*routeIDs) == 0 && !*all {
		fmt.Fprintln(a.Stderr, "trainctl: pass --route at least once, or --all to book every match")
		return 2
	}

	wanted := make(map[uuid.UUID]bool, len(*routeIDs))
	for _, raw := range *routeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			fmt.Fprintf(a.Stderr, "trainctl: invalid route id %q\n", raw)
			return 2
		}
		wanted[id] = true
	}

	if err := a.Routes.Search(ctx, criteria); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Routes.Snapshot().Error))
		return 1
	}

	var selected []domain.Route
	for _, route := range a.Routes.Snapshot().Routes {
		if *all || wanted[route.ID] {
			selected = append(selected, route)
			delete(wanted, route.ID)
		}
	}
	for id := range wanted {
		fmt.Fprintf(a.Stderr, "trainctl: route %s is not among the search results\n", id)
	}
	if len(selected) == 0 {
		fmt.Fprintln(a.Stderr, "trainctl: nothing to book")
		return 1
	}

	failed := a.bookRoutes(ctx, selected, criteria.From, criteria.To)
	if failed {
		return 1
	}
	return 0
}

// bookRoutes books a seat on every selected route concurrently. Each route
// gets its own tracker slot, so one slow or failing booking never blocks or
// poisons another; results are reported per row once all have settled.
func (a *App) bookRoutes(ctx context.Context, routes []domain.Route, from, to string) (failed bool) {
	tracker := store.NewTracker()

	var wg sync.WaitGroup
	for _, route := range routes {
		wg.Add(1)
		go func(route domain.Route) {
			defer wg.Done()
			_ = tracker.Run(ctx, route.ID, "Failed to create ticket. Please try again.", func(ctx context.Context) error {
				return a.bookOne(ctx, route, from, to)
			})
		}(route)
	}
	wg.Wait()

	for _, route := range routes {
		if msg := tracker.Err(route.ID); msg != "" {
			fmt.Fprintf(a.Stderr, "%s  %s\n", route.DisplayName(), errorStyle.Render(msg))
			failed = true
			continue
		}
		fmt.Fprintln(a.Stdout, ok(fmt.Sprintf("Booked %s (%s)", route.DisplayName(), route.ID)))
	}
	return failed
}

// bookOne resolves the booking endpoints on a single route and creates the
// ticket with a randomly chosen seat.
func (a *App) bookOne(ctx context.Context, route domain.Route, from, to string) error {
	fromStop, okFrom := route.StopByStation(from)
	if !okFrom {
		return fmt.Errorf("route has no stop at %q", from)
	}
	toStop, okTo := route.StopByStation(to)
	if !okTo {
		return fmt.Errorf("route has no stop at %q", to)
	}
	totalSeats := 0
	if route.Train != nil {
		totalSeats = route.Train.TotalSeats
	}

	_, err := a.Tickets.Book(ctx, api.CreateTicketRequest{
		RouteID:    route.ID,
		FromStopID: fromStop.ID,
		ToStopID:   toStop.ID,
		SeatNumber: store.RandomSeat(totalSeats),
	})
	return err
}
