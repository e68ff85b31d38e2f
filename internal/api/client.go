// Package api is the HTTP client for the booking API. It owns the wire
// concerns (URL building, JSON encoding, bearer token attachment, failure
// payload decoding) and exposes one method per endpoint returning domain
// types. Retry, backoff, and caching are deliberately absent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// publicPaths are endpoints that must be reachable without a session. They
// are sent without a bearer token, and a 401 from them never invalidates
// the local session.
var publicPaths = []string{"/auth/login", "/auth/register"}

// TokenSource supplies the current bearer token. An empty string means no
// session; the request is sent unauthenticated and the server decides.
type TokenSource interface {
	Token() string
}

// Config holds everything needed to build a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:3000/api".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
	// Tokens supplies the bearer token for authenticated endpoints.
	Tokens TokenSource
	// OnUnauthorized is invoked when a non-public endpoint replies 401,
	// so the session layer can invalidate the stored session. Optional.
	OnUnauthorized func()
}

// Client is the booking API client. Safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	tokens         TokenSource
	onUnauthorized func()
}

// New validates the configuration and returns a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		logger:         logger,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// isPublic reports whether the path needs no bearer token.
func isPublic(path string) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// do performs one JSON request/response cycle. A nil out discards the
// response body; non-2xx replies are returned as *Error with the payload's
// message decoded.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, requestBody, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("api: failed to create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if !isPublic(path) && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil || len(responseBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("api: failed to decode %s %s response: %w", method, path, err)
		}
		return nil
	}

	if response.StatusCode == http.StatusUnauthorized && !isPublic(path) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	apiErr := &Error{StatusCode: response.StatusCode, Message: decodeMessage(responseBody)}
	c.logger.DebugContext(ctx, "api request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"message", apiErr.Message,
	)
	return apiErr
}
