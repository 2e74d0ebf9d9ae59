package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// CategoryBreakdown is one insights row.
type CategoryBreakdown struct {
	Category   domain.Category
	Total      float64
	Count      int
	Percentage float64
}

// InsightsSummary aggregates an account's spending, optionally narrowed to a
// calendar month.
type InsightsSummary struct {
	Year       int
	Month      int
	Budget     float64
	Spent      float64
	Remaining  float64
	Categories []CategoryBreakdown
}

// InsightsService produces spending aggregates for the insights views.
type InsightsService interface {
	// Summary aggregates per-category spending. Year/month of zero means
	// all-time.
	Summary(ctx context.Context, accountID string, year, month int) (*InsightsSummary, error)
}
