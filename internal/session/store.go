package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// KV keys for the persisted session.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Store holds the current session in memory and mirrors every change to the
// durable KV. Safe for concurrent use. Its Token method satisfies the API
// client's TokenSource.
type Store struct {
	mu     sync.RWMutex
	kv     KV
	logger *slog.Logger
	user   *domain.User
	token  string
}

// NewStore returns an empty Store. Call Rehydrate to load a persisted
// session before first use.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Rehydrate loads the persisted token and user into memory. A token whose
// JWT expiry is already past is discarded along with the stored user, so
// the process starts logged out instead of carrying a dead session.
func (s *Store) Rehydrate() error {
	token, ok, err := s.kv.Get(keyToken)
	if err != nil {
		return fmt.Errorf("session.Store.Rehydrate: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	if tokenExpired(token, time.Now()) {
		s.logger.Info("stored session expired, clearing")
		return s.Clear()
	}

	var user *domain.User
	rawUser, ok, err := s.kv.Get(keyUser)
	if err != nil {
		return fmt.Errorf("session.Store.Rehydrate: %w", err)
	}
	if ok && rawUser != "" {
		user = &domain.User{}
		if err := json.Unmarshal([]byte(rawUser), user); err != nil {
			// A corrupt user record is recoverable: keep the token and
			// let the next current-user fetch repopulate it.
			s.logger.Warn("stored user unreadable, dropping", "error", err)
			user = nil
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// SetSession records a freshly authenticated session and persists it.
func (s *Store) SetSession(user domain.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session.Store.SetSession: encode user: %w", err)
	}
	if err := s.kv.Set(keyToken, token); err != nil {
		return fmt.Errorf("session.Store.SetSession: %w", err)
	}
	if err := s.kv.Set(keyUser, string(rawUser)); err != nil {
		return fmt.Errorf("session.Store.SetSession: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
	return nil
}

// SetUser refreshes the stored user without touching the token, as after a
// successful current-user fetch.
func (s *Store) SetUser(user domain.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session.Store.SetUser: encode user: %w", err)
	}
	if err := s.kv.Set(keyUser, string(rawUser)); err != nil {
		return fmt.Errorf("session.Store.SetUser: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Clear tears the session down: both the in-memory copy and the durable
// record. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Delete(keyToken); err != nil {
		return fmt.Errorf("session.Store.Clear: %w", err)
	}
	if err := s.kv.Delete(keyUser); err != nil {
		return fmt.Errorf("session.Store.Clear: %w", err)
	}
	return nil
}

// Token returns the current bearer token, "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user and whether one is present.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsAdmin reports the advisory client-side role gate. The server remains
// the authority on authorization.
func (s *Store) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin()
}
