package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// PreferenceStore persists per-account UI flags.
// Key format: prefs:<account_id>, a hash with "0"/"1" values and no TTL —
// preferences outlive sessions.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (s *PreferenceStore) Get(ctx context.Context, accountID string) (ports.Preferences, error) {
	fields, err := s.client.HGetAll(ctx, s.key(accountID)).Result()
	if err != nil {
		return ports.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return ports.Preferences{
		DarkMode: fields["dark_mode"] == "1",
		Remember: fields["remember"] == "1",
	}, nil
}

func (s *PreferenceStore) Set(ctx context.Context, accountID string, prefs ports.Preferences) error {
	fields := map[string]any{
		"dark_mode": flag(prefs.DarkMode),
		"remember":  flag(prefs.Remember),
	}
	if err := s.client.HSet(ctx, s.key(accountID), fields).Err(); err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}

func (s *PreferenceStore) key(accountID string) string {
	return "prefs:" + accountID
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
