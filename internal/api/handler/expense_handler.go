package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/api/metrics"
	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	ledger ports.LedgerService
}

func NewExpenseHandler(ledger ports.LedgerService) *ExpenseHandler {
	return &ExpenseHandler{ledger: ledger}
}

// List handles GET /v1/expenses.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        from      query     string  false  "Date from (YYYY-MM-DD, inclusive)"
// @Param        to        query     string  false  "Date to (YYYY-MM-DD, exclusive)"
// @Success      200       {object}  listExpensesResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	filter := ports.ExpenseFilter{
		Category: domain.Category(c.QueryParam("category")),
		DateFrom: parseDate(c.QueryParam("from")),
		DateTo:   parseDate(c.QueryParam("to")),
	}

	expenses, err := h.ledger.ListExpenses(c.Request().Context(), accountID, filter)
	if err != nil {
		return err
	}

	items := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = toExpenseResponse(e)
	}
	return c.JSON(http.StatusOK, listExpensesResponse{
		Expenses: items,
		Spent:    domain.ComputeSpent(expenses),
	})
}

// Create handles POST /v1/expenses — a batched add with partial success.
//
// @Summary      Add expenses
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addExpensesRequest  true  "Draft rows plus optional overspend decision"
// @Success      201   {object}  addExpensesResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req addExpensesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	decision := toDecision(req.Overspend)
	result, err := h.ledger.AddExpenses(c.Request().Context(), accountID, toDrafts(req.Expenses), decision)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "no valid expense rows"})
		}
		return err
	}

	for _, e := range result.Added {
		metrics.ExpensesAddedTotal.WithLabelValues(string(e.Category)).Inc()
	}
	for _, row := range result.Rejected {
		metrics.ExpensesRejectedTotal.WithLabelValues(row.Reason).Inc()
		if row.Reason != ports.RejectInvalidRow {
			metrics.OverspendPromptsTotal.WithLabelValues(row.Reason).Inc()
		}
	}
	if decision != nil && decision.Accepted && result.Budget == decision.ProposedCeiling {
		metrics.OverspendPromptsTotal.WithLabelValues("accepted").Inc()
	}

	return c.JSON(http.StatusCreated, toAddResponse(result))
}

// Update handles PATCH /v1/expenses/:id.
//
// @Summary      Edit an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Expense id"
// @Param        body  body      editExpenseRequest  true  "Fields to change plus optional overspend decision"
// @Success      200   {object}  editExpenseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  overspendRejectedResponse
// @Router       /v1/expenses/{id} [patch]
func (h *ExpenseHandler) Update(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req editExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	result, err := h.ledger.EditExpense(c.Request().Context(), accountID, c.Param("id"), toPatch(req), toDecision(req.Overspend))
	if err != nil {
		if errors.Is(err, domain.ErrOverspendRejected) {
			metrics.OverspendPromptsTotal.WithLabelValues(overspendResult(req.Overspend)).Inc()
			resp := overspendRejectedResponse{Error: err.Error()}
			if result != nil {
				resp.ProspectiveTotal = result.ProspectiveTotal
			}
			return c.JSON(http.StatusConflict, resp)
		}
		return err
	}

	if req.Overspend != nil && req.Overspend.Accepted {
		metrics.OverspendPromptsTotal.WithLabelValues("accepted").Inc()
	}
	return c.JSON(http.StatusOK, editExpenseResponse{
		Expense: toExpenseResponse(*result.Expense),
		Spent:   result.Spent,
	})
}

// Delete handles DELETE /v1/expenses/:id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id  path  string  true  "Expense id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}
	if err := h.ledger.DeleteExpense(c.Request().Context(), accountID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func overspendResult(decision *overspendDecisionRequest) string {
	if decision == nil || !decision.Accepted {
		return ports.RejectOverspendDeclined
	}
	return ports.RejectCeilingInsufficient
}
