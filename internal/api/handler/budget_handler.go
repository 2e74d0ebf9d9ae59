package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// BudgetHandler handles HTTP requests for the budget ceiling.
type BudgetHandler struct {
	ledger ports.LedgerService
}

func NewBudgetHandler(ledger ports.LedgerService) *BudgetHandler {
	return &BudgetHandler{ledger: ledger}
}

// Get handles GET /v1/budget. The budget is created lazily with value 0 on
// first read, so this never 404s for an authenticated account.
//
// @Summary      Get the budget ceiling
// @Tags         budget
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  budgetResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/budget [get]
func (h *BudgetHandler) Get(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	budget, err := h.ledger.EnsureBudget(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// Set handles PUT /v1/budget.
//
// @Summary      Set the budget ceiling
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setBudgetRequest  true  "New ceiling (must be positive)"
// @Success      200   {object}  budgetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/budget [put]
func (h *BudgetHandler) Set(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req setBudgetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	budget, err := h.ledger.SetBudget(c.Request().Context(), accountID, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}
