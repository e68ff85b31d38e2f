package store

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

const (
	msgFetchTickets = "Failed to fetch tickets. Please try again."
	msgCreateTicket = "Failed to create ticket. Please try again."
	msgReturnTicket = "Failed to return ticket. Please try again."
)

// ticketAPI is the slice of the API client the ticket store depends on.
type ticketAPI interface {
	MyTickets(ctx context.Context) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, req api.CreateTicketRequest) (domain.Ticket, error)
	DeleteTicket(ctx context.Context, id uuid.UUID) error
}

// TicketState is a point-in-time copy of the ticket store for rendering.
type TicketState struct {
	Tickets []domain.Ticket
	Loading bool
	Error   string
}

// TicketStore owns the authenticated user's reservations.
type TicketStore struct {
	mu      sync.Mutex
	api     ticketAPI
	logger  *slog.Logger
	tickets []domain.Ticket
	loading bool
	err     string
}

// NewTicketStore returns an empty TicketStore backed by the given API.
func NewTicketStore(a ticketAPI, logger *slog.Logger) *TicketStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketStore{api: a, logger: logger}
}

func (s *TicketStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Fetch replaces the collection wholesale; a failed fetch empties it.
func (s *TicketStore) Fetch(ctx context.Context) error {
	s.begin()
	tickets, err := s.api.MyTickets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgFetchTickets)
		s.tickets = nil
		return fmt.Errorf("store.TicketStore.Fetch: %w", err)
	}
	s.tickets = tickets
	return nil
}

// Book creates a reservation and appends it on success. The returned ticket
// lets callers report the seat the server accepted.
func (s *TicketStore) Book(ctx context.Context, req api.CreateTicketRequest) (domain.Ticket, error) {
	s.begin()
	ticket, err := s.api.CreateTicket(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgCreateTicket)
		return domain.Ticket{}, fmt.Errorf("store.TicketStore.Book: %w", err)
	}
	s.tickets = append(s.tickets, ticket)
	return ticket, nil
}

// Return cancels a reservation and removes it from the collection by id.
func (s *TicketStore) Return(ctx context.Context, id uuid.UUID) error {
	s.begin()
	err := s.api.DeleteTicket(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgReturnTicket)
		return fmt.Errorf("store.TicketStore.Return: %w", err)
	}
	kept := s.tickets[:0]
	for _, t := range s.tickets {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tickets = kept
	return nil
}

// ClearError resets the error banner. A no-op when no error is set.
func (s *TicketStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *TicketStore) Snapshot() TicketState {
	s.mu.Lock()
	defer s.mu.Unlock()
	tickets := make([]domain.Ticket, len(s.tickets))
	copy(tickets, s.tickets)
	return TicketState{Tickets: tickets, Loading: s.loading, Error: s.err}
}

// RandomSeat picks a uniform-random seat in [1, totalSeats] at booking
// time. This is a placeholder allocation with no uniqueness guarantee; the
// server is the sole arbiter of seat conflicts and rejects collisions.
func RandomSeat(totalSeats int) int {
	if totalSeats < 1 {
		return 1
	}
	return rand.IntN(totalSeats) + 1
}
