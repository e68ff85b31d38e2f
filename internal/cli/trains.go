package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

func (a *App) cmdTrains(ctx context.Context, args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		return a.cmdTrainsList(ctx, args)
	case "create":
		return a.cmdTrainsCreate(ctx, args)
	case "update":
		return a.cmdTrainsUpdate(ctx, args)
	case "delete":
		return a.cmdTrainsDelete(ctx, args)
	default:
		fmt.Fprintf(a.Stderr, "trainctl: unknown trains subcommand %q\n", sub)
		return 2
	}
}

func (a *App) cmdTrainsList(ctx context.Context, args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(a.Stderr, "trainctl: trains list takes no arguments")
		return 2
	}
	a.requireAdmin()

	if err := a.Trains.Fetch(ctx); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Trains.Snapshot().Error))
		return 1
	}

	state := a.Trains.Snapshot()
	if len(state.Trains) == 0 {
		fmt.Fprintln(a.Stdout, "No trains found.")
		return 0
	}
	rows := make([][]string, len(state.Trains))
	for i, train := range state.Trains {
		rows[i] = []string{
			train.ID.String(),
			train.TrainNumber,
			fmt.Sprintf("%d", train.TotalSeats),
			formatDateTime(train.CreatedAt),
		}
	}
	fmt.Fprintln(a.Stdout, renderTable([]string{"ID", "Number", "Seats", "Created"}, rows))
	return 0
}

// parseTrainForm normalizes the raw flag text and validates the result.
// Seats text that fails to parse carries the fallback 0 into validation and
// surfaces as the minimum-seats violation.
func parseTrainForm(number, seats string) (validate.TrainForm, validate.Issues) {
	form := validate.TrainForm{
		TrainNumber: number,
		TotalSeats:  validate.IntOr(seats, 0),
	}
	return form.Validate()
}

func (a *App) cmdTrainsCreate(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("trains create", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	number := fs.String("number", "", "train number (min 3 characters)")
	seats := fs.String("seats", "", "total seats")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a.requireAdmin()

	form, issues := parseTrainForm(*number, *seats)
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	req := api.CreateTrainRequest{TrainNumber: form.TrainNumber, TotalSeats: form.TotalSeats}
	if err := a.Trains.Create(ctx, req); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Trains.Snapshot().Error))
		return 1
	}
	fmt.Fprintln(a.Stdout, ok(fmt.Sprintf("Train %s created.", form.TrainNumber)))
	return 0
}

func (a *App) cmdTrainsUpdate(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("trains update", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	rawID := fs.String("id", "", "train id")
	number := fs.String("number", "", "new train number")
	seats := fs.String("seats", "", "new total seats")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a.requireAdmin()

	id, err := uuid.Parse(*rawID)
	if err != nil {
		fmt.Fprintln(a.Stderr, "trainctl: --id must be a valid train id")
		return 2
	}
	if *number == "" && *seats == "" {
		fmt.Fprintln(a.Stderr, "trainctl: pass --number and/or --seats")
		return 2
	}

	// Validate only the fields being changed; absent fields keep their
	// server-side values and are exempt from the form rules.
	var req api.UpdateTrainRequest
	var issues validate.Issues
	if *number != "" {
		form, numberIssues := parseTrainForm(*number, "1")
		issues = append(issues, numberIssues...)
		req.TrainNumber = &form.TrainNumber
	}
	if *seats != "" {
		form, seatIssues := parseTrainForm("000", *seats)
		issues = append(issues, seatIssues...)
		req.TotalSeats = &form.TotalSeats
	}
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	if err := a.Trains.Update(ctx, id, req); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Trains.Snapshot().Error))
		return 1
	}
	fmt.Fprintln(a.Stdout, ok("Train updated."))
	return 0
}

func (a *App) cmdTrainsDelete(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("trains delete", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	rawID := fs.String("id", "", "train id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a.requireAdmin()

	id, err := uuid.Parse(*rawID)
	if err != nil {
		fmt.Fprintln(a.Stderr, "trainctl: --id must be a valid train id")
		return 2
	}

	if err := a.Trains.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Trains.Snapshot().Error))
		return 1
	}
	fmt.Fprintln(a.Stdout, ok("Train deleted."))
	return 0
}
