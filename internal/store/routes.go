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

const (
	msgSearchRoutes = "Error searching for routes. Please try again."
	msgFetchRoutes  = "Failed to fetch routes. Please try again."
	msgCreateRoute  = "Failed to create route. Please try again."
)

// routeAPI is the slice of the API client the route store depends on.
type routeAPI interface {
	SearchRoutes(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	CreateRoute(ctx context.Context, req api.CreateRouteRequest) (domain.Route, error)
}

// RouteState is a point-in-time copy of the route store for rendering.
// LastSearch is non-nil when the collection holds search results and nil
// when it holds the full inventory; that is how the UI tells the two apart.
type RouteState struct {
	Routes     []domain.Route
	Loading    bool
	Error      string
	LastSearch *domain.SearchCriteria
}

// RouteStore owns the route collection.
type RouteStore struct {
	mu         sync.Mutex
	api        routeAPI
	logger     *slog.Logger
	routes     []domain.Route
	loading    bool
	err        string
	lastSearch *domain.SearchCriteria
}

// NewRouteStore returns an empty RouteStore backed by the given API.
func NewRouteStore(a routeAPI, logger *slog.Logger) *RouteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteStore{api: a, logger: logger}
}

func (s *RouteStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Search replaces the collection with routes matching the criteria and
// records the criteria on success. A failed search empties the collection
// (fail-closed) and keeps the error visible.
func (s *RouteStore) Search(ctx context.Context, criteria domain.SearchCriteria) error {
	s.begin()
	routes, err := s.api.SearchRoutes(ctx, criteria)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgSearchRoutes)
		s.routes = nil
		return fmt.Errorf("store.RouteStore.Search: %w", err)
	}
	s.routes = routes
	s.lastSearch = &criteria
	return nil
}

// FetchAll replaces the collection with the unfiltered inventory and clears
// the recorded criteria, marking the collection as "everything".
func (s *RouteStore) FetchAll(ctx context.Context) error {
	s.begin()
	routes, err := s.api.ListRoutes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgFetchRoutes)
		s.routes = nil
		return fmt.Errorf("store.RouteStore.FetchAll: %w", err)
	}
	s.routes = routes
	s.lastSearch = nil
	return nil
}

// Create appends the created route on success.
func (s *RouteStore) Create(ctx context.Context, req api.CreateRouteRequest) error {
	s.begin()
	route, err := s.api.CreateRoute(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgCreateRoute)
		return fmt.Errorf("store.RouteStore.Create: %w", err)
	}
	s.routes = append(s.routes, route)
	return nil
}

// ClearError resets the error banner. A no-op when no error is set.
func (s *RouteStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// ClearRoutes empties the collection, the recorded criteria, and the error,
// as when the consuming view deactivates.
func (s *RouteStore) ClearRoutes() {
	s.mu.Lock()
	s.routes = nil
	s.lastSearch = nil
	s.err = ""
	s.mu.Unlock()
}

// Find returns the route with the given id from the current collection.
func (s *RouteStore) Find(id uuid.UUID) (domain.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.routes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Route{}, false
}

// Snapshot returns a copy of the current state.
func (s *RouteStore) Snapshot() RouteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	routes := make([]domain.Route, len(s.routes))
	copy(routes, s.routes)
	var last *domain.SearchCriteria
	if s.lastSearch != nil {
		criteria := *s.lastSearch
		last = &criteria
	}
	return RouteState{Routes: routes, Loading: s.loading, Error: s.err, LastSearch: last}
}
