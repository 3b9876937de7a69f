package ports

import (
	"context"
	"time"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	SessionID string
	Identity  domain.Identity
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, rec domain.SessionRecord) error
	// Resolve validates a bearer token and returns the live session it refers to.
	Resolve(ctx context.Context, token string) (*domain.SessionRecord, error)
}
