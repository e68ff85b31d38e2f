package validate

import "github.com/google/uuid"

// StopForm is one stop of a route authoring form. StopNumber and
// PriceFromStart arrive pre-normalized from text (IntOr fallback 1, FloatOr
// fallback 0); datetime fields arrive pre-normalized via LocalToISO.
type StopForm struct {
	StationName       string
	ArrivalDateTime   string
	DepartureDateTime string
	StopNumber        int
	PriceFromStart    float64
}

// validate appends this stop's issues under the given index.
func (f StopForm) validate(issues *Issues, i int) {
	if f.StationName == "" {
		issues.add("Station name is required", Field("stops"), Index(i), Field("stationName"))
	}
	if f.ArrivalDateTime == "" {
		issues.add("Arrival date and time is required", Field("stops"), Index(i), Field("arrivalDateTime"))
	}
	if f.DepartureDateTime == "" {
		issues.add("Departure date and time is required", Field("stops"), Index(i), Field("departureDateTime"))
	}
	if f.StopNumber < 1 {
		issues.add("Stop number must be at least 1", Field("stops"), Index(i), Field("stopNumber"))
	}
	if f.PriceFromStart < 0 {
		issues.add("Price from start must be 0 or greater", Field("stops"), Index(i), Field("priceFromStart"))
	}
}

// RouteForm is the route authoring form: a train, a departure time, and a
// dynamically sized ordered list of stops.
type RouteForm struct {
	TrainID           string
	DepartureDateTime string
	Stops             []StopForm
}

// NewRouteForm returns a form seeded with one empty stop, the minimum a
// route can carry.
func NewRouteForm() RouteForm {
	return RouteForm{Stops: []StopForm{{StopNumber: 1}}}
}

// AddStop appends an empty stop numbered after the current last.
func (f *RouteForm) AddStop() {
	f.Stops = append(f.Stops, StopForm{StopNumber: len(f.Stops) + 1})
}

// RemoveStop deletes the stop at index i and renumbers the remaining stops
// to 1..n-1 contiguously. The last remaining stop cannot be removed.
func (f *RouteForm) RemoveStop(i int) {
	if len(f.Stops) <= 1 || i < 0 || i >= len(f.Stops) {
		return
	}
	f.Stops = append(f.Stops[:i], f.Stops[i+1:]...)
	for j := range f.Stops {
		f.Stops[j].StopNumber = j + 1
	}
}

// Validate checks the route schema. Issues for stop i carry the path
// stops[i].<field>.
func (f RouteForm) Validate() (RouteForm, Issues) {
	var issues Issues
	if _, err := uuid.Parse(f.TrainID); err != nil {
		issues.add("Invalid train ID", Field("trainId"))
	}
	if f.DepartureDateTime == "" {
		issues.add("Departure date and time is required", Field("departureDateTime"))
	}
	if len(f.Stops) == 0 {
		issues.add("At least one stop is required", Field("stops"))
	}
	for i, stop := range f.Stops {
		stop.validate(&issues, i)
	}
	return f, issues
}
