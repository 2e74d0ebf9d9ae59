package handler

import "time"

// --- Request / Response types ---

// expenseDraftRequest is one row of a batched add. Row-level validation
// (sanitized description, positive amount, known category) happens in the
// ledger so invalid rows are skipped without failing the batch; only the
// envelope is validated here.
type expenseDraftRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
}

type overspendDecisionRequest struct {
	Accepted        bool    `json:"accepted"`
	ProposedCeiling float64 `json:"proposed_ceiling"`
}

type addExpensesRequest struct {
	Expenses  []expenseDraftRequest     `json:"expenses" validate:"required,min=1"`
	Overspend *overspendDecisionRequest `json:"overspend"`
}

type editExpenseRequest struct {
	Description *string                   `json:"description"`
	Category    *string                   `json:"category"`
	Amount      *float64                  `json:"amount"`
	Date        *string                   `json:"date"` // YYYY-MM-DD
	Overspend   *overspendDecisionRequest `json:"overspend"`
}

type expenseResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

type rejectedRowResponse struct {
	Index            int     `json:"index"`
	Description      string  `json:"description"`
	Reason           string  `json:"reason"`
	ProspectiveTotal float64 `json:"prospective_total,omitempty"`
}

type addExpensesResponse struct {
	Added    []expenseResponse     `json:"added"`
	Rejected []rejectedRowResponse `json:"rejected"`
	Spent    float64               `json:"spent"`
	Budget   float64               `json:"budget"`
}

type editExpenseResponse struct {
	Expense expenseResponse `json:"expense"`
	Spent   float64         `json:"spent"`
}

// overspendRejectedResponse is returned with 409 when a mutation needs an
// accepted overspend decision it did not get. The prospective total lets the
// client prompt the user with a concrete minimum ceiling.
type overspendRejectedResponse struct {
	Error            string  `json:"error"`
	ProspectiveTotal float64 `json:"prospective_total"`
}

type listExpensesResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Spent    float64           `json:"spent"`
}

// --- Budget ---

type setBudgetRequest struct {
	Value float64 `json:"value" validate:"required,gt=0"`
}

type budgetResponse struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
