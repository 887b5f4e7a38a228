// Package session holds the authenticated identity and mediates all
// auth-state transitions. One Store is constructed at startup and passed
// explicitly to everything that needs it.
package session

import (
	"context"

	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// AuthClient is the slice of the auth API the store drives. Implemented by
// service.AuthService.
type AuthClient interface {
	// Login authenticates and persists the returned credentials.
	Login(ctx context.Context, req model.LoginRequest) (model.AuthPayload, error)
	// Signup registers; a successful signup is also a login.
	Signup(ctx context.Context, req model.SignupRequest) (model.AuthPayload, error)
	// Logout tells the backend best-effort and clears local credentials
	// unconditionally.
	Logout(ctx context.Context)
	// Refresh exchanges the refresh token for a new pair and persists it.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
}

// State is a snapshot of the session. IsAuthenticated is true iff User is
// set; IsAdmin is recomputed from User.Roles on every assignment and is
// never stored independently of it.
type State struct {
	User            *model.UserProfile
	IsLoading       bool
	IsAuthenticated bool
	IsAdmin         bool
	Error           string
}

func initialState() State { return State{IsLoading: true} }
