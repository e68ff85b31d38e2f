package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// Fixed fallback messages when a failure payload carries none.
const (
	msgFetchTrains = "Failed to fetch trains. Please try again."
	msgCreateTrain = "Failed to create train. Please try again."
	msgUpdateTrain = "Failed to update train. Please try again."
	msgDeleteTrain = "Failed to delete train. Please try again."
)

// trainAPI is the slice of the API client the train store depends on.
type trainAPI interface {
	ListTrains(ctx context.Context) ([]domain.Train, error)
	CreateTrain(ctx context.Context, req api.CreateTrainRequest) (domain.Train, error)
	UpdateTrain(ctx context.Context, id uuid.UUID, req api.UpdateTrainRequest) (domain.Train, error)
	DeleteTrain(ctx context.Context, id uuid.UUID) error
}

// TrainState is a point-in-time copy of the train store for rendering.
type TrainState struct {
	Trains  []domain.Train
	Loading bool
	Error   string
}

// TrainStore owns the train collection.
type TrainStore struct {
	mu      sync.Mutex
	api     trainAPI
	logger  *slog.Logger
	trains  []domain.Train
	loading bool
	err     string
}

// NewTrainStore returns an empty TrainStore backed by the given API.
func NewTrainStore(a trainAPI, logger *slog.Logger) *TrainStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrainStore{api: a, logger: logger}
}

// begin is the pending phase shared by every operation.
func (s *TrainStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Fetch replaces the collection wholesale. A failed fetch empties it so
// stale results are never left visible.
func (s *TrainStore) Fetch(ctx context.Context) error {
	s.begin()
	trains, err := s.api.ListTrains(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgFetchTrains)
		s.trains = nil
		return fmt.Errorf("store.TrainStore.Fetch: %w", err)
	}
	s.trains = trains
	return nil
}

// Create appends the created train on success.
func (s *TrainStore) Create(ctx context.Context, req api.CreateTrainRequest) error {
	s.begin()
	train, err := s.api.CreateTrain(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgCreateTrain)
		return fmt.Errorf("store.TrainStore.Create: %w", err)
	}
	s.trains = append(s.trains, train)
	return nil
}

// Update replaces the matching train in place by id. When the id is not in
// the local collection the result is logged and dropped, not an error: the
// server applied the update and the next fetch will show it.
func (s *TrainStore) Update(ctx context.Context, id uuid.UUID, req api.UpdateTrainRequest) error {
	s.begin()
	train, err := s.api.UpdateTrain(ctx, id, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgUpdateTrain)
		return fmt.Errorf("store.TrainStore.Update: %w", err)
	}
	for i := range s.trains {
		if s.trains[i].ID == train.ID {
			s.trains[i] = train
			return nil
		}
	}
	s.logger.Warn("updated train not in local collection", "id", train.ID)
	return nil
}

// Delete removes the train from the collection by id on success.
func (s *TrainStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.begin()
	err := s.api.DeleteTrain(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgDeleteTrain)
		return fmt.Errorf("store.TrainStore.Delete: %w", err)
	}
	kept := s.trains[:0]
	for _, t := range s.trains {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.trains = kept
	return nil
}

// ClearError resets the error banner. A no-op when no error is set.
func (s *TrainStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *TrainStore) Snapshot() TrainState {
	s.mu.Lock()
	defer s.mu.Unlock()
	trains := make([]domain.Train, len(s.trains))
	copy(trains, s.trains)
	return TrainState{Trains: trains, Loading: s.loading, Error: s.err}
}
