package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccount extracts the account id injected by the Auth middleware and
// fast-fails before any service call: a request that reached a protected
// handler without an account id has a structurally valid token but no usable
// identity — reject with 401.
func ctxAccount(c echo.Context) (string, error) {
	accountID, _ := c.Get("account_id").(string)
	if accountID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, nil
}
