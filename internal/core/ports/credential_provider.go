package ports

import (
	"context"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// CredentialProvider verifies a username/password pair against a known-accounts source.
// Implementations return domain.ErrInvalidCredentials when no account matches both fields.
type CredentialProvider interface {
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
}
