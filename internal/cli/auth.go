package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

func (a *App) cmdLogin(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	form, issues := validate.LoginForm{Email: *email, Password: *password}.Validate()
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	if err := a.Auth.Login(ctx, api.LoginRequest{Email: form.Email, Password: form.Password}); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Auth.Snapshot().Error))
		return 1
	}

	state := a.Auth.Snapshot()
	fmt.Fprintln(a.Stdout, ok(fmt.Sprintf("Logged in as %s <%s>", state.User.Name, state.User.Email)))
	return 0
}

func (a *App) cmdRegister(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (min 6 characters)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	form, issues := validate.RegisterForm{Name: *name, Email: *email, Password: *password}.Validate()
	if !issues.Empty() {
		fmt.Fprint(a.Stderr, renderIssues(issues))
		return 2
	}

	req := api.RegisterRequest{Name: form.Name, Email: form.Email, Password: form.Password}
	if err := a.Auth.Register(ctx, req); err != nil {
		fmt.Fprintln(a.Stderr, banner(a.Auth.Snapshot().Error))
		return 1
	}

	state := a.Auth.Snapshot()
	fmt.Fprintln(a.Stdout, ok(fmt.Sprintf("Registered and logged in as %s <%s>", state.User.Name, state.User.Email)))
	return 0
}

func (a *App) cmdLogout(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(a.Stderr, "trainctl: logout takes no arguments")
		return 2
	}
	if err := a.Auth.Logout(); err != nil {
		fmt.Fprintln(a.Stderr, banner(err.Error()))
		return 1
	}
	fmt.Fprintln(a.Stdout, "Logged out.")
	return 0
}

func (a *App) cmdWhoami(ctx context.Context, args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(a.Stderr, "trainctl: whoami takes no arguments")
		return 2
	}
	if a.Sessions.Token() == "" {
		fmt.Fprintln(a.Stdout, "Not logged in.")
		return 1
	}

	// Refresh from the server; any failure invalidates the session.
	user, err := a.Auth.FetchMe(ctx)
	if err != nil {
		fmt.Fprintln(a.Stdout, "Session expired. Please log in again.")
		return 1
	}
	fmt.Fprintf(a.Stdout, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return 0
}
