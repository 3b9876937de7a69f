package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: RoleAdmin},
		{in: " Doctor ", want: RoleDoctor},
		{in: "FRONTDESK", want: RoleFrontDesk},
		{in: "guest", want: RoleGuest},
		{in: "nurse", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRole) {
				t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewIdentity_RequiresRole(t *testing.T) {
	if _, err := NewIdentity("alice", Role("superuser"), "1"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := NewIdentity("", RoleAdmin, "1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	id, err := NewIdentity("alice", RoleDoctor, "7")
	if err != nil {
		t.Fatalf("NewIdentity returned error: %v", err)
	}
	if id.Username != "alice" || id.Role != RoleDoctor || id.AccountID != "7" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestSessionRecord_Expired(t *testing.T) {
	now := time.Now()
	rec := SessionRecord{ExpiresAt: now.Add(time.Minute)}
	if rec.Expired(now) {
		t.Fatalf("record should not be expired yet")
	}
	if !rec.Expired(now.Add(time.Minute)) {
		t.Fatalf("record should be expired at its expiry instant")
	}
}

func TestInvalidCredentialsMessage(t *testing.T) {
	if ErrInvalidCredentials.Error() != "Invalid username or password" {
		t.Fatalf("unexpected message: %q", ErrInvalidCredentials.Error())
	}
}
