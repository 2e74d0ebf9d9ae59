package ports

import (
	"context"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// SessionStore keeps the live-session records. A session exists between
// sign-in and sign-out (or TTL expiry); deleting it revokes the token.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// Find returns domain.ErrSessionNotFound when the session is absent.
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Preferences are per-account UI flags persisted across sessions.
type Preferences struct {
	DarkMode bool `json:"dark_mode"`
	Remember bool `json:"remember"`
}

// PreferenceStore persists per-account preferences. Get returns zero-value
// preferences when none have been saved yet.
type PreferenceStore interface {
	Get(ctx context.Context, accountID string) (Preferences, error)
	Set(ctx context.Context, accountID string, prefs Preferences) error
}
