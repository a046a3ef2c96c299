package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
)

// ctxAccount returns the logged-in account. Routes using it sit behind
// RequireAuth or RequireStaff, so a missing account means the middleware
// chain is misconfigured.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	a := middleware.CurrentAccount(c)
	if a == nil {
		return nil, domain.ErrUnauthenticated
	}
	return a, nil
}
