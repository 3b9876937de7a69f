package ports

import (
	"context"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// SessionRepository persists login sessions between requests.
type SessionRepository interface {
	Save(ctx context.Context, rec domain.SessionRecord) error
	// Get returns domain.ErrSessionNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (domain.SessionRecord, error)
	Delete(ctx context.Context, id string) error
}
