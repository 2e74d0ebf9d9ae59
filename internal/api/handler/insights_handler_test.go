package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

type stubInsightsService struct {
	summary  *ports.InsightsSummary
	err      error
	gotYear  int
	gotMonth int
}

func (s *stubInsightsService) Summary(_ context.Context, _ string, year, month int) (*ports.InsightsSummary, error) {
	s.gotYear = year
	s.gotMonth = month
	return s.summary, s.err
}

func TestInsightsHandler_Summary(t *testing.T) {
	svc := &stubInsightsService{
		summary: &ports.InsightsSummary{
			Year:      2026,
			Month:     9,
			Budget:    1000,
			Spent:     600,
			Remaining: 400,
			Categories: []ports.CategoryBreakdown{
				{Category: domain.CategoryBills, Total: 500, Count: 1, Percentage: 83.33},
				{Category: domain.CategoryFood, Total: 100, Count: 2, Percentage: 16.67},
			},
		},
	}
	h := NewInsightsHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/insights?year=2026&month=9", "")
	c.Set("account_id", "acc_1")
	if err := h.Summary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotYear != 2026 || svc.gotMonth != 9 {
		t.Fatalf("expected window 2026/9 forwarded, got %d/%d", svc.gotYear, svc.gotMonth)
	}

	var resp insightsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Remaining != 400 || len(resp.Categories) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Categories[0].Category != "Bills" {
		t.Fatalf("expected Bills first, got %q", resp.Categories[0].Category)
	}
}

func TestInsightsHandler_Summary_NoWindow(t *testing.T) {
	svc := &stubInsightsService{summary: &ports.InsightsSummary{}}
	h := NewInsightsHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/insights", "")
	c.Set("account_id", "acc_1")
	if err := h.Summary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotYear != 0 || svc.gotMonth != 0 {
		t.Fatalf("expected zero window, got %d/%d", svc.gotYear, svc.gotMonth)
	}
}
