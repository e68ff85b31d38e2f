package validate

import (
	"strings"
	"time"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// SearchForm is the route search input. Date is a local calendar date.
type SearchForm struct {
	From string
	To   string
	Date string
}

// Validate checks the search schema against the current local date.
func (f SearchForm) Validate() (domain.SearchCriteria, Issues) {
	return f.ValidateAt(time.Now())
}

// ValidateAt is Validate with an injectable "today", so the past-date rule
// is deterministic under test.
//
// The whole-object rule (departure and arrival stations must differ after
// trimming and case folding) runs only when every per-field rule passed,
// and attaches its issue to the "to" field.
func (f SearchForm) ValidateAt(now time.Time) (domain.SearchCriteria, Issues) {
	var issues Issues
	if trimmedLen(f.From) == 0 {
		issues.add("Enter departure station", Field("from"))
	}
	if trimmedLen(f.To) == 0 {
		issues.add("Enter arrival station", Field("to"))
	}
	switch {
	case f.Date == "":
		issues.add("Select departure date", Field("date"))
	case !dateOnOrAfterDay(f.Date, now):
		issues.add("Date cannot be in the past", Field("date"))
	}

	if issues.Empty() && sameStation(f.From, f.To) {
		issues.add("Arrival station must be different from departure station", Field("to"))
	}

	return domain.SearchCriteria{From: f.From, To: f.To, Date: f.Date}, issues
}

// sameStation compares station inputs trimmed and case-insensitively.
func sameStation(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
