package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func testCreds(t *testing.T, exp time.Time) Credentials {
	t.Helper()
	return Credentials{
		AccessToken:  signedToken(t, exp),
		RefreshToken: signedToken(t, exp.Add(24*time.Hour)),
		User:         model.UserProfile{ID: "u1", Username: "alice", Roles: []string{model.RoleUser}},
	}
}

func TestStore_SaveLoadClear(t *testing.T) {
	t.Parallel()
	s := NewStoreAt(t.TempDir())

	if _, err := s.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("empty store should report no session, got %v", err)
	}

	in := testCreds(t, time.Now().Add(time.Hour))
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != in.AccessToken || got.RefreshToken != in.RefreshToken {
		t.Fatalf("token pair mismatch")
	}
	if got.User.Username != "alice" {
		t.Fatalf("cached user mismatch: %+v", got.User)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("cleared store should report no session, got %v", err)
	}
	// clearing twice is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear (empty): %v", err)
	}
}

func TestStore_Save_RejectsIncompletePair(t *testing.T) {
	t.Parallel()
	s := NewStoreAt(t.TempDir())

	c := testCreds(t, time.Now().Add(time.Hour))
	c.RefreshToken = ""
	if err := s.Save(c); err == nil {
		t.Fatalf("partial credential pair must not be persisted")
	}
	if _, err := s.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("nothing should be stored after rejected save")
	}
}

func TestStore_SetTokens_KeepsUser(t *testing.T) {
	t.Parallel()
	s := NewStoreAt(t.TempDir())

	if err := s.Save(testCreds(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fresh := model.Tokens{
		AccessToken:  signedToken(t, time.Now().Add(2*time.Hour)),
		RefreshToken: signedToken(t, time.Now().Add(48*time.Hour)),
	}
	if err := s.SetTokens(fresh); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != fresh.AccessToken {
		t.Fatalf("access token not replaced")
	}
	if got.User.Username != "alice" {
		t.Fatalf("user must survive a token refresh, got %+v", got.User)
	}
}

func TestStore_SetTokens_NoSession(t *testing.T) {
	t.Parallel()
	s := NewStoreAt(t.TempDir())
	err := s.SetTokens(model.Tokens{AccessToken: "a", RefreshToken: "r"})
	if !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestStore_Load_CorruptFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := NewStoreAt(dir)
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("corrupt file should read as no session, got %v", err)
	}
}

func TestExpired(t *testing.T) {
	t.Parallel()

	if !Expired("") || !Expired("garbage") {
		t.Fatalf("unparsable tokens must count as expired")
	}
	if Expired(signedToken(t, time.Now().Add(time.Minute))) {
		t.Fatalf("future exp should not be expired")
	}
	if !Expired(signedToken(t, time.Now().Add(-time.Minute))) {
		t.Fatalf("past exp should be expired")
	}
}

func TestExpiresAt(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := ExpiresAt(signedToken(t, exp))
	if err != nil {
		t.Fatalf("ExpiresAt: %v", err)
	}
	if !got.Equal(exp) {
		t.Fatalf("exp mismatch: got %v want %v", got, exp)
	}

	// token without exp claim
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).
		SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ExpiresAt(noExp); err == nil {
		t.Fatalf("missing exp claim must error")
	}
}
