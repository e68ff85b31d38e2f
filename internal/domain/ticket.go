package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a user's reservation for travel between two stops on a route.
// It is immutable once created; returning a ticket deletes it from the
// user's collection. The embedded route and stops are denormalized copies
// supplied by the server for display.
type Ticket struct {
	ID         uuid.UUID `json:"id"`
	RouteID    uuid.UUID `json:"routeId"`
	UserID     uuid.UUID `json:"userId"`
	FromStopID uuid.UUID `json:"fromStopId"`
	ToStopID   uuid.UUID `json:"toStopId"`
	SeatNumber int       `json:"seatNumber"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Route      Route     `json:"route"`
	FromStop   Stop      `json:"fromStop"`
	ToStop     Stop      `json:"toStop"`
}
