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

// mockAuthAPI implements authAPI with per-method closures.
type mockAuthAPI struct {
	loginFn    func(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error)
	registerFn func(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	meFn       func(ctx context.Context) (domain.User, error)
}

var _ authAPI = (*mockAuthAPI)(nil)

func (m *mockAuthAPI) Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthAPI) Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthAPI) Me(ctx context.Context) (domain.User, error) {
	return m.meFn(ctx)
}

// memSessions is an in-memory sessions implementation recording calls.
type memSessions struct {
	user       *domain.User
	token      string
	clearCalls int
	setErr     error
}

var _ sessions = (*memSessions)(nil)

func (m *memSessions) SetSession(user domain.User, token string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.user, m.token = &user, token
	return nil
}

func (m *memSessions) SetUser(user domain.User) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.user = &user
	return nil
}

func (m *memSessions) Clear() error {
	m.clearCalls++
	m.user, m.token = nil, ""
	return nil
}

func (m *memSessions) Token() string { return m.token }

func (m *memSessions) User() (domain.User, bool) {
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

func someUser() domain.User {
	return domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: "user"}
}

// ---- Login ----

func TestAuthStore_Login_persistsSession(t *testing.T) {
	user := someUser()
	sess := &memSessions{}
	s := NewAuthStore(&mockAuthAPI{
		loginFn: func(_ context.Context, req api.LoginRequest) (api.AuthResponse, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return api.AuthResponse{User: user, Token: "tok-1"}, nil
		},
	}, sess, nil)

	err := s.Login(context.Background(), api.LoginRequest{Email: "alice@example.com", Password: "secret1"})

	require.NoError(t, err)
	state := s.Snapshot()
	assert.Equal(t, "tok-1", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, user.ID, state.User.ID)
	assert.Empty(t, state.Error)
}

func TestAuthStore_Login_failure(t *testing.T) {
	sess := &memSessions{}
	s := NewAuthStore(&mockAuthAPI{
		loginFn: func(context.Context, api.LoginRequest) (api.AuthResponse, error) {
			return api.AuthResponse{}, &api.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
		},
	}, sess, nil)

	err := s.Login(context.Background(), api.LoginRequest{})

	require.Error(t, err)
	state := s.Snapshot()
	assert.Equal(t, "Invalid credentials", state.Error)
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)
}

// No payload message falls back to the fixed login message.
func TestAuthStore_Login_fallbackMessage(t *testing.T) {
	s := NewAuthStore(&mockAuthAPI{
		loginFn: func(context.Context, api.LoginRequest) (api.AuthResponse, error) {
			return api.AuthResponse{}, errors.New("connection refused")
		},
	}, &memSessions{}, nil)

	err := s.Login(context.Background(), api.LoginRequest{})

	require.Error(t, err)
	assert.Equal(t, "Login error. Please check your credentials.", s.Snapshot().Error)
}

// A persistence failure after a successful login is logged, not surfaced:
// the user is authenticated for this process either way.
func TestAuthStore_Login_persistFailureIsNotFatal(t *testing.T) {
	sess := &memSessions{setErr: errors.New("disk full")}
	s := NewAuthStore(&mockAuthAPI{
		loginFn: func(context.Context, api.LoginRequest) (api.AuthResponse, error) {
			return api.AuthResponse{User: someUser(), Token: "tok-1"}, nil
		},
	}, sess, nil)

	err := s.Login(context.Background(), api.LoginRequest{})

	assert.NoError(t, err)
}

// ---- Register ----

func TestAuthStore_Register(t *testing.T) {
	sess := &memSessions{}
	s := NewAuthStore(&mockAuthAPI{
		registerFn: func(context.Context, api.RegisterRequest) (api.AuthResponse, error) {
			return api.AuthResponse{User: someUser(), Token: "tok-new"}, nil
		},
	}, sess, nil)

	err := s.Register(context.Background(), api.RegisterRequest{})

	require.NoError(t, err)
	assert.Equal(t, "tok-new", s.Snapshot().Token)
}

func TestAuthStore_Register_conflict(t *testing.T) {
	s := NewAuthStore(&mockAuthAPI{
		registerFn: func(context.Context, api.RegisterRequest) (api.AuthResponse, error) {
			return api.AuthResponse{}, &api.Error{StatusCode: http.StatusConflict, Message: "User already exists"}
		},
	}, &memSessions{}, nil)

	err := s.Register(context.Background(), api.RegisterRequest{})

	require.Error(t, err)
	assert.Equal(t, "User already exists", s.Snapshot().Error)
}

// ---- Logout ----

func TestAuthStore_Logout(t *testing.T) {
	sess := &memSessions{}
	require.NoError(t, sess.SetSession(someUser(), "tok-1"))
	s := NewAuthStore(&mockAuthAPI{}, sess, nil)

	require.NoError(t, s.Logout())

	state := s.Snapshot()
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)
	assert.Equal(t, 1, sess.clearCalls)
}

// ---- FetchMe ----

func TestAuthStore_FetchMe_refreshesUser(t *testing.T) {
	refreshed := someUser()
	refreshed.Role = domain.RoleAdmin
	sess := &memSessions{}
	require.NoError(t, sess.SetSession(someUser(), "tok-1"))
	s := NewAuthStore(&mockAuthAPI{
		meFn: func(context.Context) (domain.User, error) { return refreshed, nil },
	}, sess, nil)

	user, err := s.FetchMe(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	got, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "tok-1", sess.Token(), "the token is untouched")
}

// Any current-user failure invalidates the whole session.
func TestAuthStore_FetchMe_failureClearsSession(t *testing.T) {
	sess := &memSessions{}
	require.NoError(t, sess.SetSession(someUser(), "tok-stale"))
	s := NewAuthStore(&mockAuthAPI{
		meFn: func(context.Context) (domain.User, error) {
			return domain.User{}, &api.Error{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
		},
	}, sess, nil)

	_, err := s.FetchMe(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, sess.clearCalls)
	state := s.Snapshot()
	assert.Empty(t, state.Token)
	assert.Empty(t, state.Error, "an invalid session is not a banner-worthy error")
}
