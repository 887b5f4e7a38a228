package model

import (
	"encoding/json"
	"testing"
)

func TestTime_AcceptsBackendFormats(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		`"2024-01-02T15:04:05"`,          // zone-less LocalDateTime
		`"2024-01-02T15:04:05.123"`,      // with fraction
		`"2024-01-02T15:04:05Z"`,         // RFC 3339
		`"2024-01-02T15:04:05+05:30"`,    // with offset
	} {
		var ts Time
		if err := json.Unmarshal([]byte(s), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", s, err)
		}
		if ts.IsZero() {
			t.Fatalf("zero time for %s", s)
		}
	}

	var ts Time
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil || !ts.IsZero() {
		t.Fatalf("null must decode to zero time: %v", err)
	}
	if err := json.Unmarshal([]byte(`"not a date"`), &ts); err == nil {
		t.Fatalf("garbage must error")
	}
}

func TestUserProfile_IsAdmin(t *testing.T) {
	t.Parallel()

	var nilProfile *UserProfile
	if nilProfile.IsAdmin() {
		t.Fatalf("nil profile is not admin")
	}
	u := UserProfile{Roles: []string{RoleUser}}
	if u.IsAdmin() {
		t.Fatalf("USER only")
	}
	u.Roles = append(u.Roles, RoleAdmin)
	if !u.IsAdmin() {
		t.Fatalf("ADMIN role present")
	}
}

func TestUserProfile_Merge(t *testing.T) {
	t.Parallel()

	base := UserProfile{ID: "u1", Username: "alice", Email: "a@example.com", Roles: []string{RoleUser}}
	got := base.Merge(UserProfile{Email: "new@example.com"})
	if got.Email != "new@example.com" || got.Username != "alice" || got.ID != "u1" {
		t.Fatalf("merge mismatch: %+v", got)
	}

	got = base.Merge(UserProfile{Roles: []string{RoleUser, RoleAdmin}})
	if !got.IsAdmin() {
		t.Fatalf("roles must be replaced wholesale")
	}
	if base.IsAdmin() {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestAuthPayload_Profile(t *testing.T) {
	t.Parallel()

	p := AuthPayload{
		Token: "t", RefreshToken: "r",
		ID: "u1", Username: "alice", Email: "a@example.com",
		Roles: []string{RoleUser, RoleAdmin},
	}
	u := p.Profile()
	if u.ID != "u1" || u.Username != "alice" || !u.IsAdmin() || !u.Enabled {
		t.Fatalf("profile mismatch: %+v", u)
	}
}
