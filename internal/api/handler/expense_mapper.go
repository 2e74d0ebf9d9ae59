package handler

import (
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Request → Service input ---

func toDrafts(rows []expenseDraftRequest) []ports.ExpenseDraft {
	drafts := make([]ports.ExpenseDraft, len(rows))
	for i, row := range rows {
		drafts[i] = ports.ExpenseDraft{
			Description: row.Description,
			Category:    domain.Category(row.Category),
			Amount:      row.Amount,
			Date:        parseDate(row.Date),
		}
	}
	return drafts
}

func toDecision(req *overspendDecisionRequest) *ports.OverspendDecision {
	if req == nil {
		return nil
	}
	return &ports.OverspendDecision{
		Accepted:        req.Accepted,
		ProposedCeiling: req.ProposedCeiling,
	}
}

func toPatch(req editExpenseRequest) ports.ExpensePatch {
	patch := ports.ExpensePatch{
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		patch.Category = &cat
	}
	if req.Date != nil {
		if d := parseDate(*req.Date); !d.IsZero() {
			patch.Date = &d
		}
	}
	return patch
}

// parseDate returns the zero time on empty or malformed input; the ledger
// defaults a zero date to today.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return d.UTC()
}

// --- Service result → HTTP response ---

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date.UTC(),
	}
}

func toAddResponse(r *ports.AddExpensesResult) addExpensesResponse {
	added := make([]expenseResponse, len(r.Added))
	for i, e := range r.Added {
		added[i] = toExpenseResponse(e)
	}
	rejected := make([]rejectedRowResponse, len(r.Rejected))
	for i, row := range r.Rejected {
		rejected[i] = rejectedRowResponse{
			Index:            row.Index,
			Description:      row.Description,
			Reason:           row.Reason,
			ProspectiveTotal: row.ProspectiveTotal,
		}
	}
	return addExpensesResponse{
		Added:    added,
		Rejected: rejected,
		Spent:    r.Spent,
		Budget:   r.Budget,
	}
}

func toBudgetResponse(b *domain.Budget) budgetResponse {
	return budgetResponse{
		ID:        b.ID,
		Value:     b.Value,
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}
