package api

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport wraps a RoundTripper and writes one structured log line
// per request: method, path, status, and duration.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport returns an http.RoundTripper that logs every request
// through the provided logger. Pass nil for base to wrap the default
// transport. Wire it into the http.Client handed to Config.HTTPClient.
func NewLoggingTransport(logger *slog.Logger, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	response, err := t.base.RoundTrip(r)
	if err != nil {
		t.logger.ErrorContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	t.logger.InfoContext(r.Context(), "request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", response.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return response, nil
}
