// Package main is the entry point for the trainctl booking client.
// Its sole responsibility is wiring dependencies together and dispatching
// the command line. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/cli"
	"github.com/fake-oleg29/train-schedule-cli/internal/config"
	"github.com/fake-oleg29/train-schedule-cli/internal/session"
	"github.com/fake-oleg29/train-schedule-cli/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- Config -----------------------------------------------------------
	// A .env in the working directory is optional; real environment
	// variables win over it.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		return 1
	}

	// --- Logger -----------------------------------------------------------
	// Request logs go to stderr so they never mix with command output.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Session ----------------------------------------------------------
	sessions := session.NewStore(session.NewFileKV(cfg.SessionFile), logger)
	if err := sessions.Rehydrate(); err != nil {
		// A broken session file should not brick the CLI; start logged out.
		logger.Warn("session not rehydrated", "error", err)
	}

	// --- API client -------------------------------------------------------
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: api.NewLoggingTransport(logger, nil),
	}
	client, err := api.New(api.Config{
		BaseURL:    cfg.APIURL,
		HTTPClient: httpClient,
		Logger:     logger,
		Tokens:     sessions,
		OnUnauthorized: func() {
			// The server no longer honors the token; drop the session so
			// the next command starts cleanly logged out.
			if err := sessions.Clear(); err != nil {
				logger.Warn("session not cleared", "error", err)
			}
		},
	})
	if err != nil {
		slog.Error("api client error", "error", err)
		return 1
	}

	// --- Stores and commands ----------------------------------------------
	app := &cli.App{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		Sessions: sessions,
		Auth:     store.NewAuthStore(client, sessions, logger),
		Trains:   store.NewTrainStore(client, logger),
		Routes:   store.NewRouteStore(client, logger),
		Tickets:  store.NewTicketStore(client, logger),
	}
	return app.Run(context.Background(), os.Args[1:])
}
