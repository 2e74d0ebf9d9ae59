package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
)

func TestBudgetHandler_Get_NeverNotFound(t *testing.T) {
	svc := &stubLedgerService{
		budget: &domain.Budget{ID: "budget_1", AccountID: "acc_1", Value: 0, UpdatedAt: time.Now().UTC()},
	}
	h := NewBudgetHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/budget", "")
	c.Set("account_id", "acc_1")
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp budgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Value != 0 {
		t.Fatalf("expected unset budget value 0, got %v", resp.Value)
	}
}

func TestBudgetHandler_Set(t *testing.T) {
	svc := &stubLedgerService{
		budget: &domain.Budget{ID: "budget_1", AccountID: "acc_1", Value: 0},
	}
	h := NewBudgetHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/v1/budget", `{"value":1000}`)
	c.Set("account_id", "acc_1")
	if err := h.Set(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp budgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Value != 1000 {
		t.Fatalf("expected value 1000, got %v", resp.Value)
	}
}

func TestBudgetHandler_Set_RejectsNonPositive(t *testing.T) {
	h := NewBudgetHandler(&stubLedgerService{})

	for _, body := range []string{`{"value":0}`, `{"value":-100}`, `{}`} {
		c, rec := newTestContext(http.MethodPut, "/v1/budget", body)
		c.Set("account_id", "acc_1")
		if err := h.Set(c); err != nil {
			t.Fatalf("body %s: unexpected error: %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}
