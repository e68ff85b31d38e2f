package validate

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern accepts any "local@domain.tld" shape. Full RFC 5322 parsing
// is the server's concern; this only rejects obviously malformed addresses.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// checkEmail returns "" for a syntactically valid, non-empty address.
func checkEmail(value string) string {
	if value == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Invalid email format"
	}
	return ""
}

// trimmedLen counts runes after trimming surrounding whitespace.
func trimmedLen(value string) int {
	return len([]rune(strings.TrimSpace(value)))
}

// searchDateFormats are accepted by the search date rule: the calendar-date
// form the CLI takes, plus a full timestamp for pre-normalized input.
var searchDateFormats = []string{"2006-01-02", time.RFC3339}

// dateOnOrAfterDay reports whether value names a calendar date not earlier
// than the day containing today. Time-of-day is ignored. Unparseable input
// counts as a past date, so it surfaces under the same rule.
func dateOnOrAfterDay(value string, today time.Time) bool {
	var parsed time.Time
	var err error
	for _, layout := range searchDateFormats {
		parsed, err = time.ParseInLocation(layout, value, today.Location())
		if err == nil {
			break
		}
	}
	if err != nil {
		return false
	}
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return !parsed.Before(dayStart)
}
