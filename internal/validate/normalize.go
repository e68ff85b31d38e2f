package validate

import (
	"strconv"
	"time"
)

// localDateTimeLayouts are the shapes produced by datetime inputs, most to
// least specific.
var localDateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// LocalToISO converts a local date/time input string to an absolute RFC 3339
// timestamp in UTC. Empty or unparseable input is returned unchanged so the
// non-empty field rule reports it instead of a parse error.
func LocalToISO(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return value
}

// IntOr parses a numeric text field, falling back when the text is not an
// integer. Validation re-checks the fallback against the field's bounds, so
// an unparseable number surfaces as a bounds violation, not a parse error.
func IntOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// FloatOr is IntOr for decimal fields (prices).
func FloatOr(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}
