package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

const defaultSessionPrefix = "session:"

var errSessionExpired = errors.New("session already expired")

// SessionRepository stores session records as JSON with a TTL matching ExpiresAt.
// Key format: <prefix><session_id>
type SessionRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewSessionRepository(client redis.UniversalClient) *SessionRepository {
	return NewSessionRepositoryWithPrefix(client, defaultSessionPrefix)
}

func NewSessionRepositoryWithPrefix(client redis.UniversalClient, prefix string) *SessionRepository {
	return &SessionRepository{client: client, prefix: prefix}
}

func (r *SessionRepository) Save(ctx context.Context, rec domain.SessionRecord) error {
	if rec.ID == "" {
		return errors.New("session id cannot be empty")
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return errSessionExpired
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, r.key(rec.ID), data, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (domain.SessionRecord, error) {
	if id == "" {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SessionRecord{}, domain.ErrSessionNotFound
		}
		return domain.SessionRecord{}, fmt.Errorf("redis get: %w", err)
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("unmarshal session: %w", err)
	}

	if rec.Expired(time.Now()) {
		if err := r.Delete(ctx, id); err != nil {
			return domain.SessionRecord{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}
	return rec, nil
}

// Delete removes the session. Unknown ids are not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *SessionRepository) key(id string) string {
	return r.prefix + id
}
