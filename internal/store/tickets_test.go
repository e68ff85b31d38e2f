package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// mockTicketAPI implements ticketAPI with per-method closures.
type mockTicketAPI struct {
	myFn     func(ctx context.Context) ([]domain.Ticket, error)
	createFn func(ctx context.Context, req api.CreateTicketRequest) (domain.Ticket, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ ticketAPI = (*mockTicketAPI)(nil)

func (m *mockTicketAPI) MyTickets(ctx context.Context) ([]domain.Ticket, error) {
	return m.myFn(ctx)
}

func (m *mockTicketAPI) CreateTicket(ctx context.Context, req api.CreateTicketRequest) (domain.Ticket, error) {
	return m.createFn(ctx, req)
}

func (m *mockTicketAPI) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func someTicket(seat int) domain.Ticket {
	return domain.Ticket{ID: uuid.New(), SeatNumber: seat}
}

// ---- Fetch ----

func TestTicketStore_Fetch(t *testing.T) {
	want := []domain.Ticket{someTicket(3), someTicket(7)}
	s := NewTicketStore(&mockTicketAPI{
		myFn: func(context.Context) ([]domain.Ticket, error) { return want, nil },
	}, nil)

	err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, s.Snapshot().Tickets)
}

func TestTicketStore_Fetch_failureEmptiesCollection(t *testing.T) {
	calls := 0
	s := NewTicketStore(&mockTicketAPI{
		myFn: func(context.Context) ([]domain.Ticket, error) {
			calls++
			if calls == 1 {
				return []domain.Ticket{someTicket(3)}, nil
			}
			return nil, errors.New("boom")
		},
	}, nil)
	require.NoError(t, s.Fetch(context.Background()))

	err := s.Fetch(context.Background())

	require.Error(t, err)
	assert.Empty(t, s.Snapshot().Tickets)
	assert.Equal(t, "Failed to fetch tickets. Please try again.", s.Snapshot().Error)
}

// ---- Book ----

func TestTicketStore_Book(t *testing.T) {
	created := someTicket(12)
	s := NewTicketStore(&mockTicketAPI{
		createFn: func(_ context.Context, req api.CreateTicketRequest) (domain.Ticket, error) {
			assert.Equal(t, 12, req.SeatNumber)
			return created, nil
		},
	}, nil)

	ticket, err := s.Book(context.Background(), api.CreateTicketRequest{SeatNumber: 12})

	require.NoError(t, err)
	assert.Equal(t, created.ID, ticket.ID)
	require.Len(t, s.Snapshot().Tickets, 1)
}

// A seat conflict carries the server's message through to the store error.
func TestTicketStore_Book_conflictMessage(t *testing.T) {
	s := NewTicketStore(&mockTicketAPI{
		createFn: func(context.Context, api.CreateTicketRequest) (domain.Ticket, error) {
			return domain.Ticket{}, &api.Error{StatusCode: http.StatusConflict, Message: "Seat 12 is already taken"}
		},
	}, nil)

	_, err := s.Book(context.Background(), api.CreateTicketRequest{SeatNumber: 12})

	require.Error(t, err)
	assert.Equal(t, "Seat 12 is already taken", s.Snapshot().Error)
	assert.Empty(t, s.Snapshot().Tickets)
}

// ---- Return ----

func TestTicketStore_Return_removes(t *testing.T) {
	first, second := someTicket(1), someTicket(2)
	s := NewTicketStore(&mockTicketAPI{
		myFn:     func(context.Context) ([]domain.Ticket, error) { return []domain.Ticket{first, second}, nil },
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}, nil)
	require.NoError(t, s.Fetch(context.Background()))

	err := s.Return(context.Background(), first.ID)

	require.NoError(t, err)
	require.Len(t, s.Snapshot().Tickets, 1)
	assert.Equal(t, second.ID, s.Snapshot().Tickets[0].ID)
}

func TestTicketStore_Return_failure(t *testing.T) {
	first := someTicket(1)
	s := NewTicketStore(&mockTicketAPI{
		myFn:     func(context.Context) ([]domain.Ticket, error) { return []domain.Ticket{first}, nil },
		deleteFn: func(context.Context, uuid.UUID) error { return errors.New("boom") },
	}, nil)
	require.NoError(t, s.Fetch(context.Background()))

	err := s.Return(context.Background(), first.ID)

	require.Error(t, err)
	assert.Len(t, s.Snapshot().Tickets, 1)
	assert.Equal(t, "Failed to return ticket. Please try again.", s.Snapshot().Error)
}

// ---- RandomSeat ----

func TestRandomSeat_bounds(t *testing.T) {
	for range 200 {
		seat := RandomSeat(40)
		assert.GreaterOrEqual(t, seat, 1)
		assert.LessOrEqual(t, seat, 40)
	}
}

func TestRandomSeat_degenerateCapacity(t *testing.T) {
	assert.Equal(t, 1, RandomSeat(1))
	assert.Equal(t, 1, RandomSeat(0))
	assert.Equal(t, 1, RandomSeat(-5))
}
