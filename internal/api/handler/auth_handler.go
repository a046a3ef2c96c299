package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/api/metrics"
	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cookie: cookie, log: log}
}

// CSRF sets the CSRF cookie. The cookie itself is written by the CSRF
// middleware; this endpoint only gives clients a cheap request to trigger it.
//
// @Summary      Issue CSRF cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  detailResponse
// @Router       /api/auth/csrf/ [get]
func (h *AuthHandler) CSRF(c echo.Context) error {
	return c.JSON(http.StatusOK, detailResponse{Detail: "CSRF cookie set."})
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string][]string
// @Router       /api/auth/register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "Invalid payload."})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", authResult(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Detail: "Registration successful.",
		User:   account.Public(),
	})
}

// Login authenticates by email and password and starts a new session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  detailResponse
// @Router       /api/auth/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "Invalid payload."})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return err
	}

	ctx := c.Request().Context()
	res, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", authResult(err)).Inc()
		return err
	}

	// The pre-login session, if any, is discarded.
	if old, err := c.Cookie(h.cookie.Name); err == nil && old.Value != "" {
		if err := h.sessions.Delete(ctx, old.Value); err != nil {
			h.log.Warn().Err(err).Msg("failed to discard previous session")
		}
	}

	sess, err := h.sessions.Create(ctx, res.Account.ID)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}
	c.SetCookie(h.sessionCookie(sess.ID, int(h.cookie.TTL.Seconds())))

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	h.log.Info().Int64("account_id", res.Account.ID).Str("area", res.Area.String()).Msg("login")

	return c.JSON(http.StatusOK, loginResponse{
		Detail:      "Login successful.",
		User:        res.Account.Public(),
		RedirectURL: res.RedirectURL,
	})
}

// Logout ends the current session.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  detailResponse
// @Failure      403  {object}  detailResponse
// @Router       /api/auth/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}
	if sid := middleware.CurrentSessionID(c); sid != "" {
		if err := h.sessions.Delete(c.Request().Context(), sid); err != nil {
			metrics.AuthAttemptsTotal.WithLabelValues("logout", "error").Inc()
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -1))

	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	return c.JSON(http.StatusOK, detailResponse{Detail: "Logout successful."})
}

// Me returns the logged-in account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.PublicAccount
// @Failure      403  {object}  detailResponse
// @Router       /api/auth/me/ [get]
func (h *AuthHandler) Me(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account.Public())
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func authResult(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateAccounts):
		return "duplicate"
	default:
		return "error"
	}
}
