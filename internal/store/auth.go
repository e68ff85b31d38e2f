package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fake-oleg29/train-schedule-cli/internal/api"
	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

const (
	msgLogin    = "Login error. Please check your credentials."
	msgRegister = "Registration error. Please try again."
)

// authAPI is the slice of the API client the auth store depends on.
type authAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	Me(ctx context.Context) (domain.User, error)
}

// sessions is the persistence side of the auth store, satisfied by
// *session.Store.
type sessions interface {
	SetSession(user domain.User, token string) error
	SetUser(user domain.User) error
	Clear() error
	Token() string
	User() (domain.User, bool)
}

// AuthState is a point-in-time copy of the auth store for rendering.
type AuthState struct {
	User    *domain.User
	Token   string
	Loading bool
	Error   string
}

// AuthStore owns the login/register/logout transitions and keeps the
// durable session store in step with them.
type AuthStore struct {
	mu       sync.Mutex
	api      authAPI
	sessions sessions
	logger   *slog.Logger
	loading  bool
	err      string
}

// NewAuthStore returns an AuthStore over an already-rehydrated session
// store.
func NewAuthStore(a authAPI, s sessions, logger *slog.Logger) *AuthStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthStore{api: a, sessions: s, logger: logger}
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Login exchanges credentials for a session and persists it.
func (s *AuthStore) Login(ctx context.Context, req api.LoginRequest) error {
	s.begin()
	resp, err := s.api.Login(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgLogin)
		return fmt.Errorf("store.AuthStore.Login: %w", err)
	}
	if err := s.sessions.SetSession(resp.User, resp.Token); err != nil {
		s.logger.Warn("session not persisted", "error", err)
	}
	return nil
}

// Register creates an account and persists its first session.
func (s *AuthStore) Register(ctx context.Context, req api.RegisterRequest) error {
	s.begin()
	resp, err := s.api.Register(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = remoteMessage(err, msgRegister)
		return fmt.Errorf("store.AuthStore.Register: %w", err)
	}
	if err := s.sessions.SetSession(resp.User, resp.Token); err != nil {
		s.logger.Warn("session not persisted", "error", err)
	}
	return nil
}

// Logout tears down the session. Purely local: there is no server-side
// logout endpoint, the token is simply discarded.
func (s *AuthStore) Logout() error {
	s.mu.Lock()
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("store.AuthStore.Logout: %w", err)
	}
	return nil
}

// FetchMe refreshes the current user from the server. Any failure means
// the session is invalid: it is cleared, message state included, and
// never retried.
func (s *AuthStore) FetchMe(ctx context.Context) (domain.User, error) {
	s.begin()
	user, err := s.api.Me(ctx)

	s.mu.Lock()
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	if err != nil {
		if clearErr := s.sessions.Clear(); clearErr != nil {
			s.logger.Warn("session not cleared", "error", clearErr)
		}
		return domain.User{}, fmt.Errorf("store.AuthStore.FetchMe: %w", err)
	}
	if err := s.sessions.SetUser(user); err != nil {
		s.logger.Warn("user not persisted", "error", err)
	}
	return user, nil
}

// ClearError resets the error. A no-op when no error is set.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state, user and token included.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	loading, errMsg := s.loading, s.err
	s.mu.Unlock()

	state := AuthState{Loading: loading, Error: errMsg, Token: s.sessions.Token()}
	if user, ok := s.sessions.User(); ok {
		state.User = &user
	}
	return state
}
