package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// InsightsService aggregates per-category spending for the insights views.
type InsightsService struct {
	budgets  ports.BudgetRepository
	expenses ports.ExpenseRepository
	log      zerolog.Logger
}

func NewInsightsService(budgets ports.BudgetRepository, expenses ports.ExpenseRepository, log zerolog.Logger) *InsightsService {
	return &InsightsService{budgets: budgets, expenses: expenses, log: log}
}

// Summary aggregates the account's spending per category. A year/month pair
// narrows the window to that calendar month; zeroes mean all-time.
func (s *InsightsService) Summary(ctx context.Context, accountID string, year, month int) (*ports.InsightsSummary, error) {
	var from, to time.Time
	if year > 0 && month >= 1 && month <= 12 {
		from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	} else {
		year, month = 0, 0
	}

	totals, err := s.expenses.CategoryTotals(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("insights summary: %w", err)
	}

	var spent float64
	for _, t := range totals {
		spent += t.Total
	}

	rows := make([]ports.CategoryBreakdown, 0, len(totals))
	for _, t := range totals {
		pct := 0.0
		if spent > 0 {
			pct = t.Total / spent * 100
		}
		rows = append(rows, ports.CategoryBreakdown{
			Category:   t.Category,
			Total:      t.Total,
			Count:      t.Count,
			Percentage: pct,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	budgetValue := 0.0
	budget, err := s.budgets.FindByAccount(ctx, accountID)
	if err == nil {
		budgetValue = budget.Value
	} else if !errors.Is(err, domain.ErrBudgetNotFound) {
		return nil, fmt.Errorf("insights summary: %w", err)
	}

	return &ports.InsightsSummary{
		Year:       year,
		Month:      month,
		Budget:     budgetValue,
		Spent:      spent,
		Remaining:  budgetValue - spent,
		Categories: rows,
	}, nil
}
