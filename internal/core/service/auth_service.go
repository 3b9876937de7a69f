package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

const defaultSessionTTL = 8 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.CredentialProvider
	Sessions   ports.SessionRepository
	Audit      ports.AuditSink // optional
	JWTSecret  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// AuthService turns verified credentials into persisted sessions and signed tokens.
type AuthService struct {
	provider   ports.CredentialProvider
	sessions   ports.SessionRepository
	audit      ports.AuditSink
	jwtSecret  []byte
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		audit:      opts.Audit,
		jwtSecret:  []byte(opts.JWTSecret),
		sessionTTL: ttl,
		log:        opts.Logger,
		now:        time.Now,
	}
}

// sessionClaims is the token payload. RegisteredClaims.ID carries the session id.
type sessionClaims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	identity, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.record(domain.AuditEvent{Action: domain.AuditLoginFailed, Username: username})
			s.log.Info().Str("username", username).Msg("login rejected")
		}
		return nil, err
	}

	now := s.now().UTC()
	rec := domain.SessionRecord{
		ID:        uuid.NewString(),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(rec)
	if err != nil {
		_ = s.sessions.Delete(ctx, rec.ID)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.record(domain.AuditEvent{Action: domain.AuditLoginSucceeded, Username: identity.Username, Role: identity.Role})
	s.log.Info().
		Str("username", identity.Username).
		Str("role", string(identity.Role)).
		Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		SessionID: rec.ID,
		Identity:  identity,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Logout revokes the persisted session. Revoking an already removed session succeeds.
func (s *AuthService) Logout(ctx context.Context, rec domain.SessionRecord) error {
	if err := s.sessions.Delete(ctx, rec.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.record(domain.AuditEvent{Action: domain.AuditLogout, Username: rec.Identity.Username, Role: rec.Identity.Role})
	return nil
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.SessionRecord, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	rec, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if rec.Identity.Username != claims.Username {
		return nil, domain.ErrInvalidToken
	}
	return &rec, nil
}

func (s *AuthService) generateToken(rec domain.SessionRecord) (string, error) {
	claims := sessionClaims{
		Username:  rec.Identity.Username,
		Role:      string(rec.Identity.Role),
		AccountID: rec.Identity.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        rec.ID,
			Subject:   rec.Identity.Username,
			IssuedAt:  jwt.NewNumericDate(rec.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(rec.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.At = s.now().UTC()
	s.audit.Record(event)
}
