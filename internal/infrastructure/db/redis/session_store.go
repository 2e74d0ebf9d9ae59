package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// SessionStore keeps live-session records in Redis.
// Key format: session:<sid>, a hash expiring after the token TTL.
// Deleting the key is what makes sign-out effective: a structurally valid
// token whose session is gone is rejected by the auth middleware.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	key := s.key(session.ID)
	fields := map[string]any{
		"account_id": session.AccountID,
		"email":      session.Email,
		"name":       session.Name,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if ttl > 0 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return fmt.Errorf("expire session: %w", err)
		}
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	createdAt, _ := time.Parse(time.RFC3339, fields["created_at"])
	return &domain.Session{
		ID:        sessionID,
		AccountID: fields["account_id"],
		Email:     fields["email"],
		Name:      fields["name"],
		CreatedAt: createdAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
