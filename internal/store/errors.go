// Package store holds the client-side state machines for each entity
// collection (trains, routes, tickets, the auth session) plus the per-item
// operation tracker.
//
// Each store is the single writer of its collection. An operation is a
// three-phase transition: dispatch sets the loading flag and clears the
// error, then the remote call settles into either a deterministic
// collection update or an error message. Methods block until settled and
// are safe to dispatch from concurrent goroutines; state reduces in
// completion order, not issue order. No reconciliation of out-of-order
// completions is performed: a slow list that settles after a create wins
// until the next refresh.
package store

import "github.com/fake-oleg29/train-schedule-cli/internal/api"

// remoteMessage converts a remote failure into the store-level error
// string: the failure payload's message when the server supplied one,
// otherwise the operation's fixed default.
func remoteMessage(err error, fallback string) string {
	if msg, ok := api.ErrorMessage(err); ok {
		return msg
	}
	return fallback
}
