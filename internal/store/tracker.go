package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
)

// Tracker records which items of a rendered list currently have a remote
// operation in flight and which carry a per-item error. It exists because a
// collection-level loading flag would freeze every row when only one is
// busy: booking route A must not block booking route B.
//
// Tracker state is independent per id: operations on distinct ids never
// order or exclude each other. A Tracker is owned by the consuming view,
// never merged into an entity store.
type Tracker struct {
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
	errors   map[uuid.UUID]string
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		inFlight: make(map[uuid.UUID]struct{}),
		errors:   make(map[uuid.UUID]string),
	}
}

// Start marks the item in flight and clears any error it carried.
func (t *Tracker) Start(id uuid.UUID) {
	t.mu.Lock()
	t.inFlight[id] = struct{}{}
	delete(t.errors, id)
	t.mu.Unlock()
}

// Finish marks the item settled successfully.
func (t *Tracker) Finish(id uuid.UUID) {
	t.mu.Lock()
	delete(t.inFlight, id)
	t.mu.Unlock()
}

// Fail marks the item settled with a failure and records its message: the
// failure payload's message when present, else the error text, else the
// fixed fallback.
func (t *Tracker) Fail(id uuid.UUID, err error, fallback string) {
	msg, ok := api.ErrorMessage(err)
	if !ok {
		if err != nil {
			msg = err.Error()
		} else {
			msg = fallback
		}
	}

	t.mu.Lock()
	delete(t.inFlight, id)
	t.errors[id] = msg
	t.mu.Unlock()
}

// InFlight reports whether the item has an operation in flight.
func (t *Tracker) InFlight(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inFlight[id]
	return ok
}

// Err returns the item's recorded failure message, "" when none.
func (t *Tracker) Err(id uuid.UUID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errors[id]
}

// InFlightCount returns how many items currently have work in flight.
func (t *Tracker) InFlightCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inFlight)
}

// Reset drops all tracker state, as on view remount.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.inFlight = make(map[uuid.UUID]struct{})
	t.errors = make(map[uuid.UUID]string)
	t.mu.Unlock()
}

// Run wraps one item-scoped operation in the Start/Finish/Fail protocol.
// The operation's error is returned unchanged for optional further cleanup
// by the caller.
func (t *Tracker) Run(ctx context.Context, id uuid.UUID, fallback string, op func(context.Context) error) error {
	t.Start(id)
	if err := op(ctx); err != nil {
		t.Fail(id, err, fallback)
		return err
	}
	t.Finish(id)
	return nil
}
