package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role determines which parts of the application an identity may reach.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RoleFrontDesk Role = "frontdesk"
	RoleGuest     Role = "guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleFrontDesk, RoleGuest:
		return true
	}
	return false
}

// ParseRole normalises s and returns the matching Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Identity is an authenticated actor. It never exists without a valid role.
type Identity struct {
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	AccountID string `json:"id"`
}

// NewIdentity builds an Identity, rejecting unknown roles and empty usernames.
func NewIdentity(username string, role Role, accountID string) (Identity, error) {
	if username == "" {
		return Identity{}, ErrInvalidCredentials
	}
	if !role.Valid() {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return Identity{Username: username, Role: role, AccountID: accountID}, nil
}

// Account is a row of the known-accounts table consulted by credential providers.
type Account struct {
	ID       string
	Username string
	Password string
	Role     Role
}

// SessionRecord is the server-side record of a login, referenced by the token's session id.
type SessionRecord struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (s SessionRecord) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
