package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
	"github.com/pawansuthar6813/url-shortener/internal/token"
)

var _ AuthService = (*AuthServiceImpl)(nil)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func authBackend(t *testing.T, access, refresh string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	payload := func() map[string]any {
		return map[string]any{
			"token":        access,
			"type":         "Bearer",
			"refreshToken": refresh,
			"id":           "u1",
			"username":     "alice",
			"email":        "alice@example.com",
			"roles":        []string{"USER"},
		}
	}
	ok := func(w http.ResponseWriter, data any) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		ok(w, payload())
	})
	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) { ok(w, payload()) })
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req model.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
			return
		}
		ok(w, map[string]any{"token": access, "refreshToken": refresh})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthFixture(t *testing.T) (*AuthServiceImpl, *token.Store) {
	t.Helper()
	access := signedToken(t, time.Now().Add(time.Hour))
	refresh := signedToken(t, time.Now().Add(24*time.Hour))
	srv := authBackend(t, access, refresh)
	store := token.NewStoreAt(t.TempDir())
	client := api.New(srv.URL, store)
	return NewAuthService(client, store, nil), store
}

func TestAuthService_Login_PersistsUnit(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture(t)

	payload, err := svc.Login(context.Background(), model.LoginRequest{UsernameOrEmail: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if payload.Username != "alice" || payload.Token == "" || payload.RefreshToken == "" {
		t.Fatalf("payload mismatch: %+v", payload)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("credentials not persisted: %v", err)
	}
	if creds.AccessToken != payload.Token || creds.RefreshToken != payload.RefreshToken {
		t.Fatalf("token pair mismatch")
	}
	if creds.User.Username != "alice" {
		t.Fatalf("profile must be persisted with the pair: %+v", creds.User)
	}
}

func TestAuthService_Login_Rejected(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{UsernameOrEmail: "alice", Password: "wrong"})
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("message must come from the backend: %q", err.Error())
	}
	if _, err := store.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("nothing should be stored after a rejected login")
	}
}

func TestAuthService_Logout_BackendFailure(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), model.LoginRequest{UsernameOrEmail: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	// backend answers 500; local credentials are cleared anyway
	svc.Logout(context.Background())
	if _, err := store.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("logout must clear credentials regardless of backend outcome")
	}
}

func TestAuthService_Logout_NetworkDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable

	store := token.NewStoreAt(t.TempDir())
	if err := store.Save(token.Credentials{
		AccessToken:  signedToken(t, time.Now().Add(time.Hour)),
		RefreshToken: signedToken(t, time.Now().Add(24*time.Hour)),
		User:         model.UserProfile{Username: "alice"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewAuthService(api.New(srv.URL, store), store, nil)
	svc.Logout(context.Background())
	if _, err := store.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("logout with the network unreachable must still clear credentials")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture(t)

	// refresh without a session fails before any storage write
	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}

	// seed an expired pair, then refresh
	oldAccess := signedToken(t, time.Now().Add(-time.Hour))
	if err := store.Save(token.Credentials{
		AccessToken:  oldAccess,
		RefreshToken: signedToken(t, time.Now().Add(24*time.Hour)),
		User:         model.UserProfile{Username: "alice"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	creds, _ := store.Load()
	tokens, err := svc.Refresh(context.Background(), creds.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if tokens.AccessToken == oldAccess {
		t.Fatalf("access token not rotated")
	}
	stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.AccessToken != tokens.AccessToken {
		t.Fatalf("new pair not persisted")
	}
	if stored.User.Username != "alice" {
		t.Fatalf("cached profile must survive refresh")
	}
}

// Guards that the typed services satisfy their interfaces.
var (
	_ URLService   = (*URLServiceImpl)(nil)
	_ UserService  = (*UserServiceImpl)(nil)
	_ AdminService = (*AdminServiceImpl)(nil)
)
