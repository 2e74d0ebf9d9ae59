package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// LedgerService maintains one budget and the expense collection per account
// and executes the overspend-confirmation protocol.
type LedgerService struct {
	budgets  ports.BudgetRepository
	expenses ports.ExpenseRepository
	log      zerolog.Logger
}

func NewLedgerService(budgets ports.BudgetRepository, expenses ports.ExpenseRepository, log zerolog.Logger) *LedgerService {
	return &LedgerService{budgets: budgets, expenses: expenses, log: log}
}

// EnsureBudget fetches the account's budget, creating an unset (value 0)
// record when none exists yet.
func (s *LedgerService) EnsureBudget(ctx context.Context, accountID string) (*domain.Budget, error) {
	budget, err := s.budgets.FindByAccount(ctx, accountID)
	if err == nil {
		return budget, nil
	}
	if err != domain.ErrBudgetNotFound {
		return nil, fmt.Errorf("ensure budget: %w", err)
	}

	created, err := s.budgets.Create(ctx, &domain.Budget{
		AccountID: accountID,
		Value:     0,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure budget: %w", err)
	}
	s.log.Debug().Str("account_id", accountID).Msg("budget created lazily")
	return created, nil
}

func (s *LedgerService) SetBudget(ctx context.Context, accountID string, value float64) (*domain.Budget, error) {
	if value <= 0 {
		return nil, domain.ErrValidation
	}

	budget, err := s.EnsureBudget(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.budgets.UpdateValue(ctx, budget.ID, value); err != nil {
		return nil, fmt.Errorf("set budget: %w", err)
	}

	budget.Value = value
	budget.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("account_id", accountID).Float64("value", value).Msg("budget updated")
	return budget, nil
}

// AddExpenses persists a batch of draft rows. Rows failing local validation
// are skipped, rows that would exceed a non-zero ceiling run the overspend
// protocol against the supplied decision. Partial success is reported; the
// whole call fails with ErrValidation only when every row failed local
// validation.
func (s *LedgerService) AddExpenses(ctx context.Context, accountID string, drafts []ports.ExpenseDraft, decision *ports.OverspendDecision) (*ports.AddExpensesResult, error) {
	if len(drafts) == 0 {
		return nil, domain.ErrValidation
	}

	budget, err := s.EnsureBudget(ctx, accountID)
	if err != nil {
		return nil, err
	}
	existing, err := s.expenses.ListByAccount(ctx, accountID, ports.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("add expenses: %w", err)
	}

	result := &ports.AddExpensesResult{Spent: domain.ComputeSpent(existing)}
	invalidRows := 0

	for i, draft := range drafts {
		desc := domain.SanitizeDescription(draft.Description)
		if desc == "" || draft.Amount <= 0 || !draft.Category.IsValid() {
			invalidRows++
			result.Rejected = append(result.Rejected, ports.RejectedRow{
				Index:       i,
				Description: desc,
				Reason:      ports.RejectInvalidRow,
			})
			continue
		}

		prospective := result.Spent + draft.Amount
		if budget.Value > 0 && prospective > budget.Value {
			reason := s.resolveOverspend(ctx, budget, decision, prospective)
			if reason != "" {
				result.Rejected = append(result.Rejected, ports.RejectedRow{
					Index:            i,
					Description:      desc,
					Reason:           reason,
					ProspectiveTotal: prospective,
				})
				continue
			}
		}

		date := draft.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}
		inserted, err := s.expenses.Insert(ctx, &domain.Expense{
			AccountID:   accountID,
			Description: desc,
			Category:    draft.Category,
			Amount:      draft.Amount,
			Date:        date,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("add expenses: %w", err)
		}

		result.Added = append(result.Added, *inserted)
		result.Spent = prospective
	}

	if len(result.Added) == 0 && invalidRows == len(drafts) {
		return nil, domain.ErrValidation
	}

	result.Budget = budget.Value
	s.log.Info().
		Str("account_id", accountID).
		Int("added", len(result.Added)).
		Int("rejected", len(result.Rejected)).
		Float64("spent", result.Spent).
		Msg("expenses added")
	return result, nil
}

// EditExpense applies a patch to one expense. The hypothetical spent total
// (spent - old + new) runs through the same overspend protocol as adds; the
// patch is persisted only if accepted. On ErrOverspendRejected the returned
// result carries the prospective total for the caller's prompt.
func (s *LedgerService) EditExpense(ctx context.Context, accountID, id string, patch ports.ExpensePatch, decision *ports.OverspendDecision) (*ports.EditExpenseResult, error) {
	expense, err := s.expenses.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	updated := *expense
	if patch.Description != nil {
		updated.Description = domain.SanitizeDescription(*patch.Description)
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if updated.Description == "" || updated.Amount <= 0 || !updated.Category.IsValid() {
		return nil, domain.ErrValidation
	}

	budget, err := s.EnsureBudget(ctx, accountID)
	if err != nil {
		return nil, err
	}
	existing, err := s.expenses.ListByAccount(ctx, accountID, ports.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("edit expense: %w", err)
	}

	spent := domain.ComputeSpent(existing)
	hypothetical := spent - expense.Amount + updated.Amount
	if budget.Value > 0 && hypothetical > budget.Value {
		if reason := s.resolveOverspend(ctx, budget, decision, hypothetical); reason != "" {
			return &ports.EditExpenseResult{ProspectiveTotal: hypothetical}, domain.ErrOverspendRejected
		}
	}

	if err := s.expenses.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("edit expense: %w", err)
	}

	s.log.Info().
		Str("account_id", accountID).
		Str("expense_id", id).
		Float64("spent", hypothetical).
		Msg("expense updated")
	return &ports.EditExpenseResult{Expense: &updated, Spent: hypothetical}, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, accountID, id string) error {
	if err := s.expenses.Delete(ctx, accountID, id); err != nil {
		if err == domain.ErrExpenseNotFound {
			return err
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	s.log.Info().Str("account_id", accountID).Str("expense_id", id).Msg("expense deleted")
	return nil
}

func (s *LedgerService) ListExpenses(ctx context.Context, accountID string, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	return s.expenses.ListByAccount(ctx, accountID, filter)
}

// resolveOverspend runs the overspend protocol for one prospective total.
// An empty return means the decision was accepted and the budget has been
// raised to the proposed ceiling; otherwise the rejection reason is returned
// and the budget is untouched.
func (s *LedgerService) resolveOverspend(ctx context.Context, budget *domain.Budget, decision *ports.OverspendDecision, prospective float64) string {
	if decision == nil || !decision.Accepted {
		return ports.RejectOverspendDeclined
	}
	if decision.ProposedCeiling <= 0 || decision.ProposedCeiling < prospective {
		return ports.RejectCeilingInsufficient
	}

	if err := s.budgets.UpdateValue(ctx, budget.ID, decision.ProposedCeiling); err != nil {
		s.log.Error().Err(err).Str("budget_id", budget.ID).Msg("failed to raise budget ceiling")
		return ports.RejectOverspendDeclined
	}

	budget.Value = decision.ProposedCeiling
	s.log.Info().
		Str("account_id", budget.AccountID).
		Float64("ceiling", decision.ProposedCeiling).
		Msg("budget ceiling raised on overspend acceptance")
	return ""
}
