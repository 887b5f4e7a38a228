package service

import (
	"context"
	"strconv"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// AdminService defines console operations against /admin. The backend
// enforces the admin role; these calls simply fail with forbidden for
// regular users.
type AdminService interface {
	// Dashboard returns the system-wide dashboard aggregate.
	Dashboard(ctx context.Context) (model.DashboardStats, error)
	// Users returns every account at once.
	Users(ctx context.Context) ([]model.UserProfile, error)
	// UsersPaginated returns one page of accounts.
	UsersPaginated(ctx context.Context, page, size int) (model.Page[model.UserProfile], error)
	// ToggleUserStatus flips an account between enabled and disabled.
	ToggleUserStatus(ctx context.Context, userID string) (model.UserProfile, error)
	// ToggleUserRole flips an account between USER and ADMIN.
	ToggleUserRole(ctx context.Context, userID string) (model.UserProfile, error)
	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, userID string) error
	// URLs returns one page of all short links in the system.
	URLs(ctx context.Context, page, size int) (model.Page[model.URL], error)
	// ToggleURLStatus flips any link between active and inactive.
	ToggleURLStatus(ctx context.Context, urlID string) (model.URL, error)
	// DeleteURL removes any link.
	DeleteURL(ctx context.Context, urlID string) error
	// SystemStats returns system-level counters.
	SystemStats(ctx context.Context) (map[string]any, error)
	// CleanupExpiredURLs deletes expired links and returns how many.
	CleanupExpiredURLs(ctx context.Context) (int, error)
	// Analytics returns the combined dashboard and system aggregates.
	Analytics(ctx context.Context, days int) (map[string]any, error)
	// ActivityLog returns one page of audit entries.
	ActivityLog(ctx context.Context, page, size int) ([]map[string]any, error)
	// Health probes the admin health endpoint.
	Health(ctx context.Context) (map[string]any, error)
}

type AdminServiceImpl struct {
	api *api.Client
}

// NewAdminService constructs AdminService over the API client.
func NewAdminService(client *api.Client) *AdminServiceImpl {
	return &AdminServiceImpl{api: client}
}

func (s *AdminServiceImpl) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	err := s.api.Get(ctx, "/admin/dashboard", nil, &out)
	return out, err
}

func (s *AdminServiceImpl) Users(ctx context.Context) ([]model.UserProfile, error) {
	var out []model.UserProfile
	err := s.api.Get(ctx, "/admin/users", nil, &out)
	return out, err
}

func (s *AdminServiceImpl) UsersPaginated(ctx context.Context, page, size int) (model.Page[model.UserProfile], error) {
	var out model.Page[model.UserProfile]
	err := s.api.Get(ctx, "/admin/users/paginated", pageQuery(page, size), &out)
	return out, err
}

func (s *AdminServiceImpl) ToggleUserStatus(ctx context.Context, userID string) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.api.Put(ctx, "/admin/users/"+userID+"/toggle-status", nil, &out)
	return out, err
}

func (s *AdminServiceImpl) ToggleUserRole(ctx context.Context, userID string) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.api.Put(ctx, "/admin/users/"+userID+"/toggle-role", nil, &out)
	return out, err
}

func (s *AdminServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	return s.api.Delete(ctx, "/admin/users/"+userID, nil)
}

func (s *AdminServiceImpl) URLs(ctx context.Context, page, size int) (model.Page[model.URL], error) {
	var out model.Page[model.URL]
	err := s.api.Get(ctx, "/admin/urls", pageQuery(page, size), &out)
	return out, err
}

func (s *AdminServiceImpl) ToggleURLStatus(ctx context.Context, urlID string) (model.URL, error) {
	var out model.URL
	err := s.api.Put(ctx, "/admin/urls/"+urlID+"/toggle-status", nil, &out)
	return out, err
}

func (s *AdminServiceImpl) DeleteURL(ctx context.Context, urlID string) error {
	return s.api.Delete(ctx, "/admin/urls/"+urlID, nil)
}

func (s *AdminServiceImpl) SystemStats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.api.Get(ctx, "/admin/system-stats", nil, &out)
	return out, err
}

// CleanupExpiredURLs posts the cleanup and parses the count the backend
// returns as a string.
func (s *AdminServiceImpl) CleanupExpiredURLs(ctx context.Context) (int, error) {
	var raw string
	if err := s.api.Post(ctx, "/admin/cleanup-expired-urls", nil, &raw); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (s *AdminServiceImpl) Analytics(ctx context.Context, days int) (map[string]any, error) {
	var out map[string]any
	err := s.api.Get(ctx, "/admin/analytics", daysQuery(days), &out)
	return out, err
}

func (s *AdminServiceImpl) ActivityLog(ctx context.Context, page, size int) ([]map[string]any, error) {
	var out []map[string]any
	err := s.api.Get(ctx, "/admin/activity-log", pageQuery(page, size), &out)
	return out, err
}

func (s *AdminServiceImpl) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.api.Get(ctx, "/admin/health", nil, &out)
	return out, err
}
