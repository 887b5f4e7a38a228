package session

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
	"github.com/pawansuthar6813/url-shortener/internal/token"
)

// Store is the single source of truth for the session. All mutation goes
// through the operations below; callers read snapshots via State.
type Store struct {
	auth  AuthClient
	creds *token.Store
	log   *zap.Logger

	mu    sync.Mutex
	state State
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger enables logging of session transitions.
func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// New constructs a Store in the initial loading state. Initialize must run
// before the session is trusted.
func New(auth AuthClient, creds *token.Store, opts ...Option) *Store {
	s := &Store{auth: auth, creds: creds, log: zap.NewNop(), state: initialState()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot. The profile is copied so callers cannot mutate
// shared state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		u.Roles = slices.Clone(u.Roles)
		out.User = &u
	}
	return out
}

func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	s.mu.Unlock()
}

// Initialize rehydrates the session from durable storage. Outcomes:
// nothing stored -> unauthenticated; valid access token -> authenticated
// from cache without a network call; expired access but valid refresh ->
// one refresh round-trip; both expired -> full logout.
func (s *Store) Initialize(ctx context.Context) error {
	s.dispatch(setLoading{true})

	creds, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, errs.ErrNoSession) {
			s.log.Warn("reading stored credentials", zap.Error(err))
		}
		s.dispatch(setLoading{false})
		return nil
	}

	if !token.Expired(creds.AccessToken) {
		s.dispatch(loginSuccess{user: creds.User})
		return nil
	}

	if !token.Expired(creds.RefreshToken) {
		if _, err := s.auth.Refresh(ctx, creds.RefreshToken); err != nil {
			s.log.Info("token refresh failed, logging out", zap.Error(err))
			s.Logout(ctx)
			return nil
		}
		s.dispatch(loginSuccess{user: creds.User})
		return nil
	}

	// Both tokens expired.
	s.Logout(ctx)
	return nil
}

// Login authenticates, persists the credential pair and cached profile, and
// transitions to the authenticated state. The failure message lands in
// State().Error and the error is also returned so callers can show
// field-level details.
func (s *Store) Login(ctx context.Context, req model.LoginRequest) (model.AuthPayload, error) {
	s.dispatch(setLoading{true})
	s.dispatch(clearError{})

	payload, err := s.auth.Login(ctx, req)
	if err != nil {
		s.dispatch(setError{msg: err.Error()})
		return model.AuthPayload{}, err
	}
	s.dispatch(loginSuccess{user: payload.Profile()})
	return payload, nil
}

// Register has the same contract as Login: a successful registration
// establishes an authenticated session immediately.
func (s *Store) Register(ctx context.Context, req model.SignupRequest) (model.AuthPayload, error) {
	s.dispatch(setLoading{true})
	s.dispatch(clearError{})

	payload, err := s.auth.Signup(ctx, req)
	if err != nil {
		s.dispatch(setError{msg: err.Error()})
		return model.AuthPayload{}, err
	}
	s.dispatch(loginSuccess{user: payload.Profile()})
	return payload, nil
}

// Logout clears local credentials and resets the session. It cannot fail:
// backend or storage errors are swallowed after local state is reset.
func (s *Store) Logout(ctx context.Context) {
	s.auth.Logout(ctx)
	s.dispatch(logoutAction{})
}

// UpdateUser merges fields into the cached profile, recomputes the admin
// flag in the same transition, and persists the merged copy. It does not
// round-trip to the backend.
func (s *Store) UpdateUser(patch model.UserProfile) error {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return errs.ErrNoSession
	}
	s.state = reduce(s.state, updateUser{patch: patch})
	merged := *s.state.User
	s.mu.Unlock()

	return s.creds.SetUser(merged)
}

// ClearError clears the error field only.
func (s *Store) ClearError() {
	s.dispatch(clearError{})
}
