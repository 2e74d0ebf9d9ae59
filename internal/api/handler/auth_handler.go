package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/api/metrics"
	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

type AuthHandler struct {
	accountService ports.AccountService
}

func NewAuthHandler(accountService ports.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.accountService.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrDuplicateAccount):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrValidation):
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, Account: result.Account})
}

// Login authenticates an account and returns a session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.accountService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrAccountNotFound):
			status = http.StatusNotFound
			metrics.SignInsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrValidation):
			status = http.StatusBadRequest
		default:
			metrics.SignInsTotal.WithLabelValues("error").Inc()
		}
		return c.JSON(status, errorResponse{Error: err.Error()})
	}

	metrics.SignInsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, Account: result.Account})
}

// Logout ends the current session. Account and ledger data are untouched.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get("sid").(string)
	if sid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if err := h.accountService.SignOut(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the currently authenticated session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sid, _ := c.Get("sid").(string)
	if sid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	session, err := h.accountService.CurrentSession(c.Request().Context(), sid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		AccountID: session.AccountID,
		Email:     session.Email,
		Name:      session.Name,
	})
}
