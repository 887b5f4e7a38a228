// Package token implements the durable credential store and local
// token-expiry inspection.
package token

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// Credentials is the unit of durable session state. The token pair and the
// cached profile are always written and cleared together; a single file
// keeps the "token present, user absent" state unrepresentable.
type Credentials struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	User         model.UserProfile `json:"user"`
}

// Store persists credentials under a config directory.
type Store struct {
	dir string
}

// NewStore uses the default per-user config dir ($XDG_CONFIG_HOME/shortctl
// or ~/.config/shortctl).
func NewStore() *Store {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return &Store{dir: filepath.Join(v, "shortctl")}
	}
	home, _ := os.UserHomeDir()
	return &Store{dir: filepath.Join(home, ".config", "shortctl")}
}

// NewStoreAt uses an explicit directory.
func NewStoreAt(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path() string { return filepath.Join(s.dir, "credentials.json") }

// Save writes the credential unit with owner-only permissions.
func (s *Store) Save(c Credentials) error {
	if c.AccessToken == "" || c.RefreshToken == "" {
		return errors.New("token: incomplete credential pair")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o600)
}

// Load returns the stored credentials, or errs.ErrNoSession when nothing
// (or something unreadable) is stored.
func (s *Store) Load() (Credentials, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, errs.ErrNoSession
		}
		return Credentials{}, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return Credentials{}, errs.ErrNoSession
	}
	if c.AccessToken == "" || c.RefreshToken == "" {
		return Credentials{}, errs.ErrNoSession
	}
	return c, nil
}

// SetTokens replaces the token pair while keeping the cached profile.
// Used after a refresh.
func (s *Store) SetTokens(t model.Tokens) error {
	c, err := s.Load()
	if err != nil {
		return err
	}
	c.AccessToken = t.AccessToken
	c.RefreshToken = t.RefreshToken
	return s.Save(c)
}

// SetUser replaces the cached profile while keeping the token pair.
func (s *Store) SetUser(u model.UserProfile) error {
	c, err := s.Load()
	if err != nil {
		return err
	}
	c.User = u
	return s.Save(c)
}

// Clear removes all stored credentials. Missing state is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ExpiresAt decodes the exp claim out of a JWT without verifying the
// signature. The backend remains the authority; this is only used to decide
// whether attaching the token is worthwhile.
func ExpiresAt(tok string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser(jwt.WithoutClaimsValidation()).ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token: no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's embedded expiry has passed.
// Unparsable tokens count as expired.
func Expired(tok string) bool {
	exp, err := ExpiresAt(tok)
	if err != nil {
		return true
	}
	return !exp.After(time.Now())
}
