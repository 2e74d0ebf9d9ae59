package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// PreferencesHandler reads and writes per-account UI flags.
type PreferencesHandler struct {
	store ports.PreferenceStore
}

func NewPreferencesHandler(store ports.PreferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

type preferencesPayload struct {
	DarkMode bool `json:"dark_mode"`
	Remember bool `json:"remember"`
}

// Get handles GET /v1/preferences.
//
// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  preferencesPayload
// @Failure      401  {object}  errorResponse
// @Router       /v1/preferences [get]
func (h *PreferencesHandler) Get(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	prefs, err := h.store.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, preferencesPayload{DarkMode: prefs.DarkMode, Remember: prefs.Remember})
}

// Set handles PUT /v1/preferences.
//
// @Summary      Set preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      preferencesPayload  true  "Preference flags"
// @Success      200   {object}  preferencesPayload
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/preferences [put]
func (h *PreferencesHandler) Set(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req preferencesPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	if err := h.store.Set(c.Request().Context(), accountID, ports.Preferences{
		DarkMode: req.DarkMode,
		Remember: req.Remember,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}
