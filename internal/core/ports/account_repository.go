package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// AccountRepository defines persistence for the canonical account collection.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// List returns all accounts ordered by creation time.
	List(ctx context.Context) ([]domain.Account, error)
}

// LegacyProfileRepository reads the pre-multi-account single-user record.
// Fetch returns domain.ErrAccountNotFound when no legacy profile exists.
type LegacyProfileRepository interface {
	Fetch(ctx context.Context) (*domain.LegacyProfile, error)
}
