package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

type stubLedgerService struct {
	budget     *domain.Budget
	budgetErr  error
	addResult  *ports.AddExpensesResult
	addErr     error
	editResult *ports.EditExpenseResult
	editErr    error
	deleteErr  error
	expenses   []domain.Expense
	listErr    error

	gotDrafts   []ports.ExpenseDraft
	gotDecision *ports.OverspendDecision
	gotPatch    ports.ExpensePatch
	gotFilter   ports.ExpenseFilter
	deleted     []string
}

func (s *stubLedgerService) EnsureBudget(_ context.Context, _ string) (*domain.Budget, error) {
	return s.budget, s.budgetErr
}

func (s *stubLedgerService) SetBudget(_ context.Context, _ string, value float64) (*domain.Budget, error) {
	if s.budgetErr != nil {
		return nil, s.budgetErr
	}
	b := *s.budget
	b.Value = value
	return &b, nil
}

func (s *stubLedgerService) AddExpenses(_ context.Context, _ string, drafts []ports.ExpenseDraft, decision *ports.OverspendDecision) (*ports.AddExpensesResult, error) {
	s.gotDrafts = drafts
	s.gotDecision = decision
	return s.addResult, s.addErr
}

func (s *stubLedgerService) EditExpense(_ context.Context, _, _ string, patch ports.ExpensePatch, decision *ports.OverspendDecision) (*ports.EditExpenseResult, error) {
	s.gotPatch = patch
	s.gotDecision = decision
	return s.editResult, s.editErr
}

func (s *stubLedgerService) DeleteExpense(_ context.Context, _, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubLedgerService) ListExpenses(_ context.Context, _ string, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	s.gotFilter = filter
	return s.expenses, s.listErr
}

func TestExpenseHandler_Create(t *testing.T) {
	svc := &stubLedgerService{
		addResult: &ports.AddExpensesResult{
			Added: []domain.Expense{
				{ID: "exp_1", Description: "Coffee", Category: domain.CategoryFood, Amount: 150},
			},
			Spent:  150,
			Budget: 0,
		},
	}
	h := NewExpenseHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/v1/expenses",
		`{"expenses":[{"description":"Coffee","category":"Food","amount":150,"date":"2026-09-01"}]}`)
	c.Set("account_id", "acc_1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp addExpensesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Added) != 1 || resp.Spent != 150 {
		t.Fatalf("unexpected response %+v", resp)
	}

	if len(svc.gotDrafts) != 1 {
		t.Fatalf("expected 1 draft passed through, got %d", len(svc.gotDrafts))
	}
	want := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !svc.gotDrafts[0].Date.Equal(want) {
		t.Fatalf("expected parsed date %v, got %v", want, svc.gotDrafts[0].Date)
	}
}

func TestExpenseHandler_Create_EmptyBatch(t *testing.T) {
	h := NewExpenseHandler(&stubLedgerService{})

	c, rec := newTestContext(http.MethodPost, "/v1/expenses", `{"expenses":[]}`)
	c.Set("account_id", "acc_1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create_AllRowsInvalid(t *testing.T) {
	h := NewExpenseHandler(&stubLedgerService{addErr: domain.ErrValidation})

	c, rec := newTestContext(http.MethodPost, "/v1/expenses",
		`{"expenses":[{"description":"123","category":"Food","amount":10}]}`)
	c.Set("account_id", "acc_1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create_PassesDecisionThrough(t *testing.T) {
	svc := &stubLedgerService{addResult: &ports.AddExpensesResult{Budget: 1200, Spent: 1100}}
	h := NewExpenseHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/v1/expenses",
		`{"expenses":[{"description":"Concert","category":"Entertainment","amount":200}],
		  "overspend":{"accepted":true,"proposed_ceiling":1200}}`)
	c.Set("account_id", "acc_1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.gotDecision == nil || !svc.gotDecision.Accepted || svc.gotDecision.ProposedCeiling != 1200 {
		t.Fatalf("expected decision forwarded, got %+v", svc.gotDecision)
	}
}

func TestExpenseHandler_Create_MissingAccount(t *testing.T) {
	h := NewExpenseHandler(&stubLedgerService{})

	c, _ := newTestContext(http.MethodPost, "/v1/expenses", `{"expenses":[]}`)
	if err := h.Create(c); err == nil {
		t.Fatal("expected error for missing account id")
	}
}

func TestExpenseHandler_Update_OverspendRejected(t *testing.T) {
	svc := &stubLedgerService{
		editResult: &ports.EditExpenseResult{ProspectiveTotal: 1100},
		editErr:    domain.ErrOverspendRejected,
	}
	h := NewExpenseHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/v1/expenses/exp_1", `{"amount":1100}`)
	c.SetParamNames("id")
	c.SetParamValues("exp_1")
	c.Set("account_id", "acc_1")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp overspendRejectedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ProspectiveTotal != 1100 {
		t.Fatalf("expected prospective total 1100 in 409 body, got %v", resp.ProspectiveTotal)
	}
}

func TestExpenseHandler_Update(t *testing.T) {
	svc := &stubLedgerService{
		editResult: &ports.EditExpenseResult{
			Expense: &domain.Expense{ID: "exp_1", Description: "Cinema", Category: domain.CategoryEntertainment, Amount: 160},
			Spent:   460,
		},
	}
	h := NewExpenseHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/v1/expenses/exp_1", `{"amount":160}`)
	c.SetParamNames("id")
	c.SetParamValues("exp_1")
	c.Set("account_id", "acc_1")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotPatch.Amount == nil || *svc.gotPatch.Amount != 160 {
		t.Fatalf("expected amount patch 160, got %+v", svc.gotPatch)
	}
	if svc.gotPatch.Description != nil {
		t.Fatal("expected untouched fields to stay nil in the patch")
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	svc := &stubLedgerService{}
	h := NewExpenseHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/v1/expenses/exp_1", "")
	c.SetParamNames("id")
	c.SetParamValues("exp_1")
	c.Set("account_id", "acc_1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "exp_1" {
		t.Fatalf("expected exp_1 deleted, got %v", svc.deleted)
	}
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	h := NewExpenseHandler(&stubLedgerService{deleteErr: domain.ErrExpenseNotFound})

	c, _ := newTestContext(http.MethodDelete, "/v1/expenses/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	c.Set("account_id", "acc_1")
	err := h.Delete(c)
	if err != domain.ErrExpenseNotFound {
		t.Fatalf("expected ErrExpenseNotFound bubbled to the error handler, got %v", err)
	}
}

func TestExpenseHandler_List(t *testing.T) {
	svc := &stubLedgerService{
		expenses: []domain.Expense{
			{ID: "exp_1", Description: "Coffee", Category: domain.CategoryFood, Amount: 150},
			{ID: "exp_2", Description: "Bus", Category: domain.CategoryTravel, Amount: 50},
		},
	}
	h := NewExpenseHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/expenses?category=Food&from=2026-09-01", "")
	c.Set("account_id", "acc_1")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listExpensesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Expenses) != 2 || resp.Spent != 200 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if svc.gotFilter.Category != domain.CategoryFood {
		t.Fatalf("expected category filter forwarded, got %q", svc.gotFilter.Category)
	}
	if svc.gotFilter.DateFrom.IsZero() {
		t.Fatal("expected from date parsed into the filter")
	}
}
