// Package testutil provides shared helpers for tests, chiefly an
// in-process fake of the booking API. The fake implements every endpoint
// the client consumes with the same wire shapes and failure payloads, so
// api and store tests exercise real HTTP round trips without a backend.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// Failure is an injected error reply.
type Failure struct {
	Status  int
	Message string
}

type userRecord struct {
	user     domain.User
	password string
}

// FakeAPI is an in-memory booking API served over httptest. Mutate the
// exported collections directly to seed state; all handler access is
// mutex-guarded.
type FakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	users    map[string]userRecord // by email
	tokens   map[string]domain.User
	trains   []domain.Train
	routes   []domain.Route
	tickets  []domain.Ticket
	failures map[string]Failure // "METHOD /pattern" → reply
}

// NewFakeAPI starts a fake booking API server. It is closed automatically
// when the test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		t:        t,
		users:    make(map[string]userRecord),
		tokens:   make(map[string]domain.User),
		failures: make(map[string]Failure),
	}

	r := chi.NewRouter()
	r.Post("/auth/login", f.handleLogin)
	r.Post("/auth/register", f.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(f.requireToken)
		r.Get("/auth/me", f.handleMe)
		r.Get("/routes", f.handleListRoutes)
		r.Post("/routes", f.handleCreateRoute)
		r.Get("/trains", f.handleListTrains)
		r.Post("/trains", f.handleCreateTrain)
		r.Patch("/trains/{id}", f.handleUpdateTrain)
		r.Delete("/trains/{id}", f.handleDeleteTrain)
		r.Post("/tickets", f.handleCreateTicket)
		r.Get("/tickets/my", f.handleMyTickets)
		r.Delete("/tickets/{id}", f.handleDeleteTicket)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the fake API root for api.Config.BaseURL.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// FailWith makes the given endpoint reply with an injected failure until
// cleared. The pattern is the chi route pattern, e.g. "POST /tickets".
func (f *FakeAPI) FailWith(method, pattern string, status int, message string) {
	f.mu.Lock()
	f.failures[method+" "+pattern] = Failure{Status: status, Message: message}
	f.mu.Unlock()
}

// ClearFailure removes an injected failure.
func (f *FakeAPI) ClearFailure(method, pattern string) {
	f.mu.Lock()
	delete(f.failures, method+" "+pattern)
	f.mu.Unlock()
}

// SeedUser registers an account and returns it.
func (f *FakeAPI) SeedUser(name, email, password, role string) domain.User {
	user := domain.User{ID: uuid.New(), Name: name, Email: email, Role: role}
	f.mu.Lock()
	f.users[email] = userRecord{user: user, password: password}
	f.mu.Unlock()
	return user
}

// IssueToken mints a bearer token for an already-seeded user, for tests
// that start from a logged-in state.
func (f *FakeAPI) IssueToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.users[email]
	if !ok {
		f.t.Fatalf("testutil.FakeAPI.IssueToken: no user %q", email)
	}
	token := "tok-" + uuid.NewString()
	f.tokens[token] = record.user
	return token
}

// SeedTrain adds a train to the inventory and returns it.
func (f *FakeAPI) SeedTrain(number string, seats int) domain.Train {
	now := time.Now().UTC()
	train := domain.Train{ID: uuid.New(), TrainNumber: number, TotalSeats: seats, CreatedAt: now, UpdatedAt: now}
	f.mu.Lock()
	f.trains = append(f.trains, train)
	f.mu.Unlock()
	return train
}

// SeedRoute adds a route for the train through the given stations, one hour
// and ten currency units apart per hop, and returns it with projections
// computed the way the real server does.
func (f *FakeAPI) SeedRoute(train domain.Train, departure time.Time, stations ...string) domain.Route {
	if len(stations) < 2 {
		f.t.Fatalf("testutil.FakeAPI.SeedRoute: need at least 2 stations, got %d", len(stations))
	}
	routeID := uuid.New()
	now := time.Now().UTC()
	stops := make([]domain.Stop, len(stations))
	for i, name := range stations {
		arrive := departure.Add(time.Duration(i) * time.Hour)
		stops[i] = domain.Stop{
			ID:                uuid.New(),
			RouteID:           routeID,
			StationName:       name,
			ArrivalDateTime:   arrive,
			DepartureDateTime: arrive.Add(5 * time.Minute),
			StopNumber:        i + 1,
			PriceFromStart:    float64(i) * 10,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}
	route := domain.Route{
		ID:                routeID,
		TrainID:           train.ID,
		DepartureDateTime: departure,
		CreatedAt:         now,
		UpdatedAt:         now,
		Train:             &train,
		Stops:             stops,
	}
	projectRoute(&route)
	f.mu.Lock()
	f.routes = append(f.routes, route)
	f.mu.Unlock()
	return route
}

// Tickets returns a copy of the stored tickets.
func (f *FakeAPI) Tickets() []domain.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out
}

// ---- handlers --------------------------------------------------------------

func (f *FakeAPI) failInjected(w http.ResponseWriter, r *http.Request) bool {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	f.mu.Lock()
	failure, ok := f.failures[r.Method+" "+pattern]
	f.mu.Unlock()
	if !ok {
		return false
	}
	writeError(w, failure.Status, failure.Message)
	return true
}

func (f *FakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		_, ok := f.tokens[token]
		f.mu.Unlock()
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) currentUser(r *http.Request) domain.User {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[token]
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	decodeBody(w, r, &req)

	f.mu.Lock()
	record, ok := f.users[req.Email]
	f.mu.Unlock()
	if !ok || record.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	f.respondSession(w, record.user)
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	decodeBody(w, r, &req)

	f.mu.Lock()
	_, exists := f.users[req.Email]
	f.mu.Unlock()
	if exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	user := f.SeedUser(req.Name, req.Email, req.Password, "user")
	f.respondSession(w, user)
}

func (f *FakeAPI) respondSession(w http.ResponseWriter, user domain.User) {
	token := "tok-" + uuid.NewString()
	f.mu.Lock()
	f.tokens[token] = user
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

func (f *FakeAPI) handleMe(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, f.currentUser(r))
}

func (f *FakeAPI) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")

	f.mu.Lock()
	defer f.mu.Unlock()
	if from == "" && to == "" {
		writeJSON(w, http.StatusOK, append([]domain.Route{}, f.routes...))
		return
	}
	matched := []domain.Route{}
	for _, route := range f.routes {
		if stationEqual(route.StartStation.Name, from) && stationEqual(route.EndStation.Name, to) {
			matched = append(matched, route)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}

func (f *FakeAPI) handleCreateRoute(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	var req struct {
		TrainID           uuid.UUID `json:"trainId"`
		DepartureDateTime time.Time `json:"departureDateTime"`
		Stops             []struct {
			StationName       string    `json:"stationName"`
			ArrivalDateTime   time.Time `json:"arrivalDateTime"`
			DepartureDateTime time.Time `json:"departureDateTime"`
			StopNumber        int       `json:"stopNumber"`
			PriceFromStart    float64   `json:"priceFromStart"`
		} `json:"stops"`
	}
	decodeBody(w, r, &req)

	f.mu.Lock()
	defer f.mu.Unlock()
	var train *domain.Train
	for i := range f.trains {
		if f.trains[i].ID == req.TrainID {
			train = &f.trains[i]
		}
	}
	if train == nil {
		writeError(w, http.StatusNotFound, "Train not found")
		return
	}

	routeID := uuid.New()
	now := time.Now().UTC()
	stops := make([]domain.Stop, len(req.Stops))
	for i, s := range req.Stops {
		stops[i] = domain.Stop{
			ID:                uuid.New(),
			RouteID:           routeID,
			StationName:       s.StationName,
			ArrivalDateTime:   s.ArrivalDateTime,
			DepartureDateTime: s.DepartureDateTime,
			StopNumber:        s.StopNumber,
			PriceFromStart:    s.PriceFromStart,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}
	route := domain.Route{
		ID:                routeID,
		TrainID:           req.TrainID,
		DepartureDateTime: req.DepartureDateTime,
		CreatedAt:         now,
		UpdatedAt:         now,
		Train:             train,
		Stops:             stops,
	}
	projectRoute(&route)
	f.routes = append(f.routes, route)
	writeJSON(w, http.StatusCreated, route)
}

func (f *FakeAPI) handleListTrains(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Train{}, f.trains...))
}

func (f *FakeAPI) handleCreateTrain(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	var req struct {
		TrainNumber string `json:"trainNumber"`
		TotalSeats  int    `json:"totalSeats"`
	}
	decodeBody(w, r, &req)

	now := time.Now().UTC()
	train := domain.Train{ID: uuid.New(), TrainNumber: req.TrainNumber, TotalSeats: req.TotalSeats, CreatedAt: now, UpdatedAt: now}
	f.mu.Lock()
	f.trains = append(f.trains, train)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, train)
}

func (f *FakeAPI) handleUpdateTrain(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}
	var req struct {
		TrainNumber *string `json:"trainNumber"`
		TotalSeats  *int    `json:"totalSeats"`
	}
	decodeBody(w, r, &req)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.trains {
		if f.trains[i].ID != id {
			continue
		}
		if req.TrainNumber != nil {
			f.trains[i].TrainNumber = *req.TrainNumber
		}
		if req.TotalSeats != nil {
			f.trains[i].TotalSeats = *req.TotalSeats
		}
		f.trains[i].UpdatedAt = time.Now().UTC()
		writeJSON(w, http.StatusOK, f.trains[i])
		return
	}
	writeError(w, http.StatusNotFound, "Train not found")
}

func (f *FakeAPI) handleDeleteTrain(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.trains {
		if f.trains[i].ID == id {
			f.trains = append(f.trains[:i], f.trains[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Train not found")
}

func (f *FakeAPI) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	var req struct {
		RouteID    uuid.UUID `json:"routeId"`
		FromStopID uuid.UUID `json:"fromStopId"`
		ToStopID   uuid.UUID `json:"toStopId"`
		SeatNumber int       `json:"seatNumber"`
	}
	decodeBody(w, r, &req)
	user := f.currentUser(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	var route *domain.Route
	for i := range f.routes {
		if f.routes[i].ID == req.RouteID {
			route = &f.routes[i]
		}
	}
	if route == nil {
		writeError(w, http.StatusNotFound, "Route not found")
		return
	}
	var fromStop, toStop *domain.Stop
	for i := range route.Stops {
		if route.Stops[i].ID == req.FromStopID {
			fromStop = &route.Stops[i]
		}
		if route.Stops[i].ID == req.ToStopID {
			toStop = &route.Stops[i]
		}
	}
	if fromStop == nil || toStop == nil {
		writeError(w, http.StatusNotFound, "Stop not found")
		return
	}
	if route.Train != nil && (req.SeatNumber < 1 || req.SeatNumber > route.Train.TotalSeats) {
		writeError(w, http.StatusUnprocessableEntity, "Seat number out of range")
		return
	}

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:         uuid.New(),
		RouteID:    route.ID,
		UserID:     user.ID,
		FromStopID: fromStop.ID,
		ToStopID:   toStop.ID,
		SeatNumber: req.SeatNumber,
		Price:      toStop.PriceFromStart - fromStop.PriceFromStart,
		CreatedAt:  now,
		UpdatedAt:  now,
		Route:      *route,
		FromStop:   *fromStop,
		ToStop:     *toStop,
	}
	f.tickets = append(f.tickets, ticket)
	writeJSON(w, http.StatusCreated, ticket)
}

func (f *FakeAPI) handleMyTickets(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	user := f.currentUser(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	mine := []domain.Ticket{}
	for _, ticket := range f.tickets {
		if ticket.UserID == user.ID {
			mine = append(mine, ticket)
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

func (f *FakeAPI) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	if f.failInjected(w, r) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			f.tickets = append(f.tickets[:i], f.tickets[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Ticket not found")
}

// ---- helpers ---------------------------------------------------------------

// projectRoute fills the server-computed projections from the stops, the
// same way the real backend derives them.
func projectRoute(route *domain.Route) {
	stops := make([]domain.Stop, len(route.Stops))
	copy(stops, route.Stops)
	domain.SortStops(stops)
	first, last := stops[0], stops[len(stops)-1]

	route.StartStation = domain.StartStation{Name: first.StationName, DepartureDateTime: first.DepartureDateTime}
	route.EndStation = domain.EndStation{Name: last.StationName, ArrivalDateTime: last.ArrivalDateTime}
	route.TicketPrice = last.PriceFromStart

	total := int(last.ArrivalDateTime.Sub(first.DepartureDateTime).Minutes())
	route.Duration = domain.Duration{
		TotalMinutes: total,
		Hours:        total / 60,
		Minutes:      total % 60,
		Formatted:    fmt.Sprintf("%dh %dm", total/60, total%60),
	}
}

func stationEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
	}
}
