package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	CSRFHeader    = "X-CSRFToken"
	CSRFFormField = "csrfmiddlewaretoken"
	CSRFContext   = "csrf"
)

// CSRF issues the token cookie on every request and checks it on unsafe
// methods. Unsafe /api/ calls without a session cookie are exempt: with no
// session there is nothing a forged request could act on.
func CSRF(cookieName, sessionCookie string, secure bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/") || isSafeMethod(req.Method) {
				return false
			}
			cookie, err := c.Cookie(sessionCookie)
			return err != nil || cookie.Value == ""
		},
		TokenLookup:    "header:" + CSRFHeader + ",form:" + CSRFFormField,
		ContextKey:     CSRFContext,
		CookieName:     cookieName,
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
