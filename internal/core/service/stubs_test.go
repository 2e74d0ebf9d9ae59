package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// --- Account store stubs ---

type stubAccountRepo struct {
	accounts []domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{}
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrDuplicateAccount
		}
	}
	r.nextID++
	created := *account
	created.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.accounts = append(r.accounts, created)
	clone := created
	return &clone, nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

type stubLegacyRepo struct {
	profile *domain.LegacyProfile
}

func (r *stubLegacyRepo) Fetch(_ context.Context) (*domain.LegacyProfile, error) {
	if r.profile == nil {
		return nil, domain.ErrAccountNotFound
	}
	clone := *r.profile
	return &clone, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session, _ time.Duration) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, sessionID string) (*domain.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type stubDirectory struct {
	id  string
	err error
}

func (d *stubDirectory) FindOrCreate(_ context.Context, _, _ string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.id, nil
}

// --- Ledger stubs ---

type stubBudgetRepo struct {
	budget *domain.Budget
}

func (r *stubBudgetRepo) FindByAccount(_ context.Context, accountID string) (*domain.Budget, error) {
	if r.budget == nil || r.budget.AccountID != accountID {
		return nil, domain.ErrBudgetNotFound
	}
	clone := *r.budget
	return &clone, nil
}

func (r *stubBudgetRepo) Create(_ context.Context, budget *domain.Budget) (*domain.Budget, error) {
	created := *budget
	created.ID = "budget_1"
	r.budget = &created
	clone := created
	return &clone, nil
}

func (r *stubBudgetRepo) UpdateValue(_ context.Context, id string, value float64) error {
	if r.budget == nil || r.budget.ID != id {
		return domain.ErrBudgetNotFound
	}
	r.budget.Value = value
	return nil
}

type stubExpenseRepo struct {
	expenses []domain.Expense
	nextID   int
}

func (r *stubExpenseRepo) Insert(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	r.nextID++
	created := *expense
	created.ID = fmt.Sprintf("exp_%d", r.nextID)
	r.expenses = append(r.expenses, created)
	clone := created
	return &clone, nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, accountID, id string) (*domain.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id && e.AccountID == accountID {
			clone := e
			return &clone, nil
		}
	}
	return nil, domain.ErrExpenseNotFound
}

func (r *stubExpenseRepo) ListByAccount(_ context.Context, accountID string, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range r.expenses {
		if e.AccountID != accountID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, expense *domain.Expense) error {
	for i, e := range r.expenses {
		if e.ID == expense.ID && e.AccountID == expense.AccountID {
			r.expenses[i] = *expense
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

func (r *stubExpenseRepo) Delete(_ context.Context, accountID, id string) error {
	for i, e := range r.expenses {
		if e.ID == id && e.AccountID == accountID {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

func (r *stubExpenseRepo) CategoryTotals(_ context.Context, accountID string, from, to time.Time) ([]ports.CategoryTotal, error) {
	byCategory := make(map[domain.Category]*ports.CategoryTotal)
	var order []domain.Category
	for _, e := range r.expenses {
		if e.AccountID != accountID {
			continue
		}
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Date.Before(to) {
			continue
		}
		row, ok := byCategory[e.Category]
		if !ok {
			row = &ports.CategoryTotal{Category: e.Category}
			byCategory[e.Category] = row
			order = append(order, e.Category)
		}
		row.Total += e.Amount
		row.Count++
	}
	out := make([]ports.CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, *byCategory[cat])
	}
	return out, nil
}
