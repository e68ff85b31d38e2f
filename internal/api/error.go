package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a non-2xx reply from the booking API. Message carries the
// server's human-readable explanation when the body supplied one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// ErrorMessage extracts the server-supplied message from a remote failure.
// The second return is false when err carries no usable payload message and
// the caller should fall back to its own default.
func ErrorMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// errorBody is the failure payload shape. The message field is usually a
// string but validation replies may carry a list of messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// decodeMessage extracts a printable message from a failure body, joining
// list-shaped messages into one line. Returns "" when the body carries none.
func decodeMessage(body []byte) string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, ", ")
	}
	return ""
}
