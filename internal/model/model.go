// Package model defines wire types exchanged with the url-shortener backend.
package model

import (
	"slices"
	"strings"
	"time"
)

// Role markers as the backend reports them in UserProfile.Roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Time wraps time.Time to accept both RFC 3339 and the backend's
// zone-less LocalDateTime serialization.
type Time struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range timeLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// UserProfile is the cached copy of the backend's user record.
type UserProfile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"roles"`
	Enabled     bool     `json:"enabled"`
	CreatedAt   Time     `json:"createdAt,omitempty"`
	UpdatedAt   Time     `json:"updatedAt,omitempty"`
	URLCount    int64    `json:"urlCount,omitempty"`
	TotalClicks int64    `json:"totalClicks,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && slices.Contains(p.Roles, RoleAdmin)
}

// Merge returns a copy of p with the non-zero fields of patch applied.
// Roles are replaced wholesale when the patch carries any.
func (p UserProfile) Merge(patch UserProfile) UserProfile {
	out := p
	if patch.ID != "" {
		out.ID = patch.ID
	}
	if patch.Username != "" {
		out.Username = patch.Username
	}
	if patch.Email != "" {
		out.Email = patch.Email
	}
	if patch.FirstName != "" {
		out.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		out.LastName = patch.LastName
	}
	if patch.Roles != nil {
		out.Roles = slices.Clone(patch.Roles)
	}
	return out
}

// AuthPayload is the backend's combined token-pair + profile response
// returned by signup and login.
type AuthPayload struct {
	Token        string   `json:"token"`
	Type         string   `json:"type,omitempty"` // "Bearer"
	RefreshToken string   `json:"refreshToken"`
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Roles        []string `json:"roles"`
}

// Profile extracts the user fields from the payload.
func (a AuthPayload) Profile() UserProfile {
	return UserProfile{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Roles:     slices.Clone(a.Roles),
		Enabled:   true,
	}
}

// Tokens is a credential pair issued by the backend.
type Tokens struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileRequest carries a partial profile update; empty fields are untouched.
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Password  string `json:"password,omitempty"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateURLRequest asks the backend to mint a short link.
type CreateURLRequest struct {
	OriginalURL    string `json:"originalUrl"`
	CustomCode     string `json:"customCode,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	ExpirationDate *Time  `json:"expirationDate,omitempty"`
}

// URL is a single short-link mapping.
type URL struct {
	ID          string `json:"id"`
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Expiration  Time   `json:"expirationDate,omitempty"`
	CreatedAt   Time   `json:"createdAt"`
	UpdatedAt   Time   `json:"updatedAt"`
	ClickCount  int64  `json:"clickCount"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// Click is a single recorded redirect hit.
type Click struct {
	ID           string `json:"id"`
	URLMappingID string `json:"urlMappingId"`
	ShortCode    string `json:"shortCode"`
	IPAddress    string `json:"ipAddress,omitempty"`
	UserAgent    string `json:"userAgent,omitempty"`
	Referer      string `json:"referer,omitempty"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city,omitempty"`
	Device       string `json:"device,omitempty"`
	Browser      string `json:"browser,omitempty"`
	ClickedAt    Time   `json:"clickedAt"`
}

// DashboardStats is the per-user dashboard aggregate.
type DashboardStats struct {
	TotalURLs       int64            `json:"totalUrls"`
	TotalClicks     int64            `json:"totalClicks"`
	TodayClicks     int64            `json:"todayClicks"`
	ThisWeekClicks  int64            `json:"thisWeekClicks"`
	ThisMonthClicks int64            `json:"thisMonthClicks"`
	RecentURLs      []URL            `json:"recentUrls,omitempty"`
	TopURLs         []URL            `json:"topUrls,omitempty"`
	ClicksByDate    map[string]int64 `json:"clicksByDate,omitempty"`
	ClicksByCountry map[string]int64 `json:"clicksByCountry,omitempty"`
	ClicksByDevice  map[string]int64 `json:"clicksByDevice,omitempty"`
}

// Page is one page of a backend list response (Spring page shape).
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}
