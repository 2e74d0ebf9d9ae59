package ports

import (
	"context"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// ExpenseDraft is one row of a batched add-expenses request.
type ExpenseDraft struct {
	Description string
	Category    domain.Category
	Amount      float64
	Date        time.Time
}

// OverspendDecision is the user's answer to the overspend prompt: whether the
// budget increase was accepted and, if so, the proposed new ceiling.
type OverspendDecision struct {
	Accepted        bool
	ProposedCeiling float64
}

// Rejection reasons recorded on skipped rows.
const (
	RejectInvalidRow          = "invalid_row"
	RejectOverspendDeclined   = "overspend_declined"
	RejectCeilingInsufficient = "ceiling_insufficient"
)

// RejectedRow describes one draft that was not persisted.
type RejectedRow struct {
	Index            int
	Description      string
	Reason           string
	ProspectiveTotal float64
}

// AddExpensesResult reports the outcome of a batched add.
type AddExpensesResult struct {
	Added    []domain.Expense
	Rejected []RejectedRow
	Spent    float64
	Budget   float64
}

// ExpensePatch carries the fields of an edit; nil means "keep current value".
type ExpensePatch struct {
	Description *string
	Category    *domain.Category
	Amount      *float64
	Date        *time.Time
}

// EditExpenseResult reports the outcome of an edit. On ErrOverspendRejected
// the result still carries the prospective total so callers can prompt the
// user with it.
type EditExpenseResult struct {
	Expense          *domain.Expense
	Spent            float64
	ProspectiveTotal float64
}

// LedgerService maintains one budget and the expense collection per account
// and executes the overspend-confirmation protocol. Within a single call the
// sequence budget-check, budget-update, expense-persist is strictly ordered;
// calls racing each other on the same account are not serialized.
type LedgerService interface {
	// EnsureBudget returns the account's budget, creating an unset (value 0)
	// record when none exists.
	EnsureBudget(ctx context.Context, accountID string) (*domain.Budget, error)
	SetBudget(ctx context.Context, accountID string, value float64) (*domain.Budget, error)
	AddExpenses(ctx context.Context, accountID string, drafts []ExpenseDraft, decision *OverspendDecision) (*AddExpensesResult, error)
	EditExpense(ctx context.Context, accountID, id string, patch ExpensePatch, decision *OverspendDecision) (*EditExpenseResult, error)
	DeleteExpense(ctx context.Context, accountID, id string) error
	ListExpenses(ctx context.Context, accountID string, filter ExpenseFilter) ([]domain.Expense, error)
}
