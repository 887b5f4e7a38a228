package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// UserService defines account operations against /user.
type UserService interface {
	// Profile returns the caller's profile.
	Profile(ctx context.Context) (model.UserProfile, error)
	// UpdateProfile applies a partial update server-side and returns the
	// updated profile. Callers then merge it into the session store.
	UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.UserProfile, error)
	// Dashboard returns the per-user dashboard aggregate.
	Dashboard(ctx context.Context) (model.DashboardStats, error)
	// Analytics returns click analytics over the last days.
	Analytics(ctx context.Context, days int) (map[string]any, error)
	// Stats returns account-level counters.
	Stats(ctx context.Context) (map[string]any, error)
	// ChangePassword rotates the password.
	ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error
}

type UserServiceImpl struct {
	api *api.Client
}

// NewUserService constructs UserService over the API client.
func NewUserService(client *api.Client) *UserServiceImpl {
	return &UserServiceImpl{api: client}
}

func (s *UserServiceImpl) Profile(ctx context.Context) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.api.Get(ctx, "/user/profile", nil, &out)
	return out, err
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.api.Put(ctx, "/user/profile", req, &out)
	return out, err
}

func (s *UserServiceImpl) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	err := s.api.Get(ctx, "/user/dashboard", nil, &out)
	return out, err
}

func (s *UserServiceImpl) Analytics(ctx context.Context, days int) (map[string]any, error) {
	var out map[string]any
	err := s.api.Get(ctx, "/user/analytics", daysQuery(days), &out)
	return out, err
}

func (s *UserServiceImpl) Stats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.api.Get(ctx, "/user/stats", nil, &out)
	return out, err
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	return s.api.Put(ctx, "/user/change-password", req, nil)
}

func daysQuery(days int) url.Values {
	if days <= 0 {
		days = 30
	}
	return url.Values{"days": []string{strconv.Itoa(days)}}
}
