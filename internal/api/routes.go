package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

// CreateStopRequest is one stop of a POST /routes body.
type CreateStopRequest struct {
	StationName       string  `json:"stationName"`
	ArrivalDateTime   string  `json:"arrivalDateTime"`
	DepartureDateTime string  `json:"departureDateTime"`
	StopNumber        int     `json:"stopNumber"`
	PriceFromStart    float64 `json:"priceFromStart"`
}

// CreateRouteRequest is the POST /routes body.
type CreateRouteRequest struct {
	TrainID           uuid.UUID           `json:"trainId"`
	DepartureDateTime string              `json:"departureDateTime"`
	Stops             []CreateStopRequest `json:"stops"`
}

// RouteRequestFromForm maps a validated route form onto the wire shape.
// Call it only after validate.RouteForm.Validate reported no issues; the
// train ID is assumed parseable.
func RouteRequestFromForm(form validate.RouteForm) CreateRouteRequest {
	req := CreateRouteRequest{
		TrainID:           uuid.MustParse(form.TrainID),
		DepartureDateTime: form.DepartureDateTime,
		Stops:             make([]CreateStopRequest, len(form.Stops)),
	}
	for i, stop := range form.Stops {
		req.Stops[i] = CreateStopRequest{
			StationName:       stop.StationName,
			ArrivalDateTime:   stop.ArrivalDateTime,
			DepartureDateTime: stop.DepartureDateTime,
			StopNumber:        stop.StopNumber,
			PriceFromStart:    stop.PriceFromStart,
		}
	}
	return req
}

// SearchRoutes returns routes matching the user's criteria.
func (c *Client) SearchRoutes(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Route, error) {
	query := url.Values{}
	query.Set("from", criteria.From)
	query.Set("to", criteria.To)
	query.Set("date", criteria.Date)

	var routes []domain.Route
	if err := c.do(ctx, http.MethodGet, "/routes", query, nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// ListRoutes returns the unfiltered route inventory (admin listing).
func (c *Client) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := c.do(ctx, http.MethodGet, "/routes", nil, nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// CreateRoute creates a route with its stops in one call.
func (c *Client) CreateRoute(ctx context.Context, req CreateRouteRequest) (domain.Route, error) {
	var route domain.Route
	if err := c.do(ctx, http.MethodPost, "/routes", nil, req, &route); err != nil {
		return domain.Route{}, err
	}
	return route, nil
}
