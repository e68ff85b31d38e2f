package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Stop is one station visit on a route, with its own arrival/departure
// times and cumulative price from the route's origin. Stops exist only as
// part of a route; there is no standalone stop mutation.
type Stop struct {
	ID                uuid.UUID `json:"id"`
	RouteID           uuid.UUID `json:"routeId"`
	StationName       string    `json:"stationName"`
	ArrivalDateTime   time.Time `json:"arrivalDateTime"`
	DepartureDateTime time.Time `json:"departureDateTime"`
	StopNumber        int       `json:"stopNumber"`
	PriceFromStart    float64   `json:"priceFromStart"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StartStation is the server-computed origin projection of a route.
type StartStation struct {
	Name              string    `json:"name"`
	DepartureDateTime time.Time `json:"departureDateTime"`
}

// EndStation is the server-computed destination projection of a route.
type EndStation struct {
	Name            string    `json:"name"`
	ArrivalDateTime time.Time `json:"arrivalDateTime"`
}

// Duration is the server-computed travel time of a route.
type Duration struct {
	TotalMinutes int    `json:"totalMinutes"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Formatted    string `json:"formatted"`
}

// Display returns the server-formatted duration, falling back to "3h 20m"
// style when the server did not supply one.
func (d Duration) Display() string {
	if d.Formatted != "" {
		return d.Formatted
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// Route is a scheduled journey of a specific train through an ordered
// sequence of stops. StartStation, EndStation, Duration, and TicketPrice are
// authoritative server-side projections.
type Route struct {
	ID                uuid.UUID    `json:"id"`
	TrainID           uuid.UUID    `json:"trainId"`
	DepartureDateTime time.Time    `json:"departureDateTime"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	Train             *Train       `json:"train,omitempty"`
	Stops             []Stop       `json:"stops,omitempty"`
	TicketPrice       float64      `json:"ticketPrice"`
	StartStation      StartStation `json:"startStation"`
	EndStation        EndStation   `json:"endStation"`
	Duration          Duration     `json:"duration"`
}

// SortStops orders stops ascending by stop number. Source order from the
// server is not guaranteed, so consumers sort defensively before deriving
// anything from the first/last stop.
func SortStops(stops []Stop) {
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].StopNumber < stops[j].StopNumber
	})
}

// DisplayName derives a human-readable "Origin → Destination" name.
// It prefers the server projections and falls back to the first and last
// stop after a defensive sort. Routes with no usable data render as
// "Unknown Route".
func (r Route) DisplayName() string {
	if r.StartStation.Name != "" && r.EndStation.Name != "" {
		return r.StartStation.Name + " → " + r.EndStation.Name
	}
	if len(r.Stops) > 0 {
		sorted := make([]Stop, len(r.Stops))
		copy(sorted, r.Stops)
		SortStops(sorted)
		return sorted[0].StationName + " → " + sorted[len(sorted)-1].StationName
	}
	return "Unknown Route"
}

// StopByStation returns the stop whose station name matches after trimming
// and case folding, as used when resolving booking endpoints from user input.
func (r Route) StopByStation(name string) (Stop, bool) {
	for _, s := range r.Stops {
		if foldStation(s.StationName) == foldStation(name) {
			return s, true
		}
	}
	return Stop{}, false
}

// SearchCriteria are the user-facing route search parameters. Date is the
// local calendar date in "2006-01-02" form, as entered.
type SearchCriteria struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}
