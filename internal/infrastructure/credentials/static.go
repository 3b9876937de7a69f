// Package credentials provides a CredentialProvider backed by a fixed account list.
package credentials

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// DefaultLatency stands in for the round trip to a real identity provider.
const DefaultLatency = 500 * time.Millisecond

// DefaultAccounts is the built-in known-accounts table.
func DefaultAccounts() []domain.Account {
	return []domain.Account{
		{ID: "1", Username: "admin", Password: "password", Role: domain.RoleAdmin},
		{ID: "2", Username: "doctor", Password: "password", Role: domain.RoleDoctor},
		{ID: "3", Username: "frontdesk", Password: "password", Role: domain.RoleFrontDesk},
		{ID: "4", Username: "guest", Password: "password", Role: domain.RoleGuest},
	}
}

// StaticProvider matches credentials exactly against an in-memory list.
// It never mutates state after construction.
type StaticProvider struct {
	accounts []domain.Account
	latency  time.Duration
}

type Option func(*StaticProvider)

// WithLatency overrides the simulated lookup delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(p *StaticProvider) {
		if d >= 0 {
			p.latency = d
		}
	}
}

// NewStaticProvider copies accounts and validates every entry.
func NewStaticProvider(accounts []domain.Account, opts ...Option) (*StaticProvider, error) {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if a.Username == "" || a.Password == "" {
			return nil, fmt.Errorf("static credentials: account %q has empty username or password", a.ID)
		}
		if !a.Role.Valid() {
			return nil, fmt.Errorf("static credentials: account %q: %w: %q", a.Username, domain.ErrUnknownRole, a.Role)
		}
		if _, dup := seen[a.Username]; dup {
			return nil, fmt.Errorf("static credentials: duplicate username %q", a.Username)
		}
		seen[a.Username] = struct{}{}
	}

	p := &StaticProvider{
		accounts: append([]domain.Account(nil), accounts...),
		latency:  DefaultLatency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Authenticate waits for the simulated latency, then returns the identity whose
// username and password both equal the input.
func (p *StaticProvider) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	if err := p.wait(ctx); err != nil {
		return domain.Identity{}, err
	}
	if username == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	for _, a := range p.accounts {
		if equal(a.Username, username) && equal(a.Password, password) {
			return domain.NewIdentity(a.Username, a.Role, a.ID)
		}
	}
	return domain.Identity{}, domain.ErrInvalidCredentials
}

func (p *StaticProvider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
