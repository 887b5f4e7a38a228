// Package service contains typed facades over the backend API, one per
// backend controller.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
	"github.com/pawansuthar6813/url-shortener/internal/token"
)

// AuthService defines authentication operations against /auth. Successful
// login and signup persist the credential pair and profile as a unit.
type AuthService interface {
	// Login authenticates by username or email.
	Login(ctx context.Context, req model.LoginRequest) (model.AuthPayload, error)
	// Signup registers a new account; registration implies immediate login.
	Signup(ctx context.Context, req model.SignupRequest) (model.AuthPayload, error)
	// Logout tells the backend best-effort and always clears local
	// credentials. It cannot fail from the caller's perspective.
	Logout(ctx context.Context)
	// Refresh exchanges a refresh token for a new pair and persists it.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
}

type AuthServiceImpl struct {
	api   *api.Client
	creds *token.Store
	log   *zap.Logger
}

// NewAuthService constructs AuthService over the API client and credential store.
func NewAuthService(client *api.Client, creds *token.Store, log *zap.Logger) *AuthServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthServiceImpl{api: client, creds: creds, log: log}
}

// Login calls POST /auth/login and persists the returned credentials.
func (s *AuthServiceImpl) Login(ctx context.Context, req model.LoginRequest) (model.AuthPayload, error) {
	var payload model.AuthPayload
	if err := s.api.Post(ctx, "/auth/login", req, &payload); err != nil {
		return model.AuthPayload{}, err
	}
	if err := s.persist(payload); err != nil {
		return model.AuthPayload{}, err
	}
	return payload, nil
}

// Signup calls POST /auth/signup; same contract as Login.
func (s *AuthServiceImpl) Signup(ctx context.Context, req model.SignupRequest) (model.AuthPayload, error) {
	var payload model.AuthPayload
	if err := s.api.Post(ctx, "/auth/signup", req, &payload); err != nil {
		return model.AuthPayload{}, err
	}
	if err := s.persist(payload); err != nil {
		return model.AuthPayload{}, err
	}
	return payload, nil
}

// Logout posts to /auth/logout and clears local credentials regardless of
// the outcome, including network failure.
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		s.log.Debug("backend logout failed, clearing local state anyway", zap.Error(err))
	}
	if err := s.creds.Clear(); err != nil {
		s.log.Warn("clearing credentials", zap.Error(err))
	}
}

// Refresh calls POST /auth/refresh. A failure here is terminal for the
// session; callers cascade it into a full logout.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	if refreshToken == "" {
		return model.Tokens{}, errs.ErrNoSession
	}
	var tokens model.Tokens
	if err := s.api.Post(ctx, "/auth/refresh", model.RefreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
		return model.Tokens{}, err
	}
	if err := s.creds.SetTokens(tokens); err != nil {
		return model.Tokens{}, err
	}
	return tokens, nil
}

func (s *AuthServiceImpl) persist(p model.AuthPayload) error {
	return s.creds.Save(token.Credentials{
		AccessToken:  p.Token,
		RefreshToken: p.RefreshToken,
		User:         p.Profile(),
	})
}
