package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

// Context keys set by Session.
const (
	AccountKey   = "account"
	SessionIDKey = "session_id"
)

// AccountFinder loads the account a session belongs to.
type AccountFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}

// Session resolves the session cookie into the logged-in account. Requests
// without a valid session continue anonymously; access checks are left to
// RequireAuth and RequireStaff.
func Session(sessions ports.SessionStore, accounts AccountFinder, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			sess, err := sessions.Get(ctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Msg("session lookup failed")
				}
				return next(c)
			}

			account, err := accounts.FindByID(ctx, sess.AccountID)
			if err != nil {
				if !errors.Is(err, domain.ErrAccountNotFound) {
					log.Warn().Err(err).Int64("account_id", sess.AccountID).Msg("session account lookup failed")
				}
				return next(c)
			}
			if !account.IsActive {
				return next(c)
			}

			c.Set(AccountKey, account)
			c.Set(SessionIDKey, sess.ID)
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a logged-in account.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentAccount(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// CurrentAccount returns the account set by Session, or nil.
func CurrentAccount(c echo.Context) *domain.Account {
	a, _ := c.Get(AccountKey).(*domain.Account)
	return a
}

// CurrentSessionID returns the session id set by Session, or "".
func CurrentSessionID(c echo.Context) string {
	id, _ := c.Get(SessionIDKey).(string)
	return id
}
