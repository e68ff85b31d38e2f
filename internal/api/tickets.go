package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// CreateTicketRequest is the POST /tickets body. SeatNumber is chosen
// client-side at submission time; the server is the sole arbiter of seat
// conflicts.
type CreateTicketRequest struct {
	RouteID    uuid.UUID `json:"routeId"`
	FromStopID uuid.UUID `json:"fromStopId"`
	ToStopID   uuid.UUID `json:"toStopId"`
	SeatNumber int       `json:"seatNumber"`
}

// CreateTicket books a seat.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (domain.Ticket, error) {
	var ticket domain.Ticket
	if err := c.do(ctx, http.MethodPost, "/tickets", nil, req, &ticket); err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// MyTickets returns the authenticated user's reservations.
func (c *Client) MyTickets(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := c.do(ctx, http.MethodGet, "/tickets/my", nil, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// DeleteTicket returns (cancels) a reservation.
func (c *Client) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tickets/"+id.String(), nil, nil, nil)
}
