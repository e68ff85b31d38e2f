package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
)

func (a *App) cmdRoutes(ctx context.Context, args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		return a.cmdRoutesList(ctx, args)
	case "create":
		return a.cmdRoutesCreate(ctx, args)
	default:
		fmt.Fprintf(a.Stderr, "trainctl: unknown routes subcommand %q\n", sub)
		return 2
	}
}

func (a *App) cmdRoutesList(ctx context.Context, args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(a.Stderr, "trainctl: routes list takes no arguments")
		return 2
	}
	a.requireAdmin()

	if err := a.Routes.FetchAll(ctx); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Routes.Snapshot().Error))
		return 1
	}

	state := a.Routes.Snapshot()
	if len(state.Routes) == 0 {
		fmt.Fprintln(a.Stdout, "No routes found.")
		return 0
	}
	rows := make([][]string, len(state.Routes))
	for i, route := range state.Routes {
		trainNumber, seats := "N/A", "0"
		if route.Train != nil {
			trainNumber = route.Train.TrainNumber
			seats = fmt.Sprintf("%d", route.Train.TotalSeats)
		}
		rows[i] = []string{
			route.ID.String(),
			route.DisplayName(),
			trainNumber,
			seats,
			fmt.Sprintf("%d", len(route.Stops)),
		}
	}
	fmt.Fprintln(a.Stdout, renderTable([]string{"ID", "Route", "Train", "Seats", "Stops"}, rows))
	return 0
}

func (a *App) cmdRoutesCreate(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("routes create", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	file := fs.StringP("file", "f", "", "route definition file (YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a.requireAdmin()

	if *file == "" {
		fmt.Fprintln(a.Stderr, "trainctl: pass --file with a route definition")
		return 2
	}

	form, err := loadRouteForm(*file)
	if err != nil {
		fmt.Fprintln(a.Stderr, banner(err.Error()))
		return 2
	}
	form, issues := form.Validate()
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	if err := a.Routes.Create(ctx, api.RouteRequestFromForm(form)); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Routes.Snapshot().Error))
		return 1
	}
	fmt.Fprintln(a.Stdout, ok("Route created."))
	return 0
}
