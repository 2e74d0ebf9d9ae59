package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// BudgetRepository defines persistence for the per-account budget ceiling.
type BudgetRepository interface {
	// FindByAccount returns domain.ErrBudgetNotFound when the account has no
	// budget record yet.
	FindByAccount(ctx context.Context, accountID string) (*domain.Budget, error)
	Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error)
	UpdateValue(ctx context.Context, id string, value float64) error
}
