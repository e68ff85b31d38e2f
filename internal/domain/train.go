// Package domain contains the core data types for the train schedule client.
// This package has zero behavior beyond small display helpers and is imported
// by every other internal package (validate, api, store, cli).
//
// Field names and JSON tags mirror the booking API's wire format. The
// projections the server computes for a route (start/end station, duration,
// ticket price) are consumed read-only; the client formats them for display
// but never recomputes them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Train is a physical train managed by administrators.
// Identity is immutable once created; TrainNumber and TotalSeats are
// mutable via update.
type Train struct {
	ID          uuid.UUID `json:"id"`
	TrainNumber string    `json:"trainNumber"`
	TotalSeats  int       `json:"totalSeats"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
