package ports

import (
	"context"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// ExpenseFilter narrows expense listings. Zero values mean "no filter".
type ExpenseFilter struct {
	Category domain.Category
	DateFrom time.Time
	DateTo   time.Time
}

// CategoryTotal is one aggregation row: total amount and entry count for a
// single category.
type CategoryTotal struct {
	Category domain.Category
	Total    float64
	Count    int
}

// ExpenseRepository defines persistence for expense records. Every operation
// is scoped to the owning account.
type ExpenseRepository interface {
	Insert(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	// FindByID returns domain.ErrExpenseNotFound when the expense does not
	// exist or belongs to another account.
	FindByID(ctx context.Context, accountID, id string) (*domain.Expense, error)
	// ListByAccount returns the account's expenses, newest date first.
	ListByAccount(ctx context.Context, accountID string, filter ExpenseFilter) ([]domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, accountID, id string) error
	// CategoryTotals aggregates amount and count per category within the
	// optional date window.
	CategoryTotals(ctx context.Context, accountID string, from, to time.Time) ([]CategoryTotal, error)
}
