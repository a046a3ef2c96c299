package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// RequireStaff lets only active staff accounts through. Everyone else is
// redirected to loginURL with the requested URI in the next parameter.
func RequireStaff(loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if a := CurrentAccount(c); a != nil && a.IsStaff {
				return next(c)
			}
			target := loginURL + "?next=" + url.QueryEscape(c.Request().RequestURI)
			return c.Redirect(http.StatusFound, target)
		}
	}
}
