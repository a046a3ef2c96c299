package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/core/domain"
)

// errorResponse is the envelope for catalog and generic errors.
type errorResponse struct {
	Error string `json:"error"`
}

// detailResponse is the envelope for authentication errors.
type detailResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - renders field validation failures as {"field": ["message", ...]} with 400
//   - maps known domain errors to deterministic status codes
//   - logs unexpected errors without leaking details to the client
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Fields
	}

	// Echo's own errors (bind failures, 404 from router, CSRF rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, detailResponse{Detail: "Invalid email or password."}
	case errors.Is(err, domain.ErrDuplicateAccounts):
		return http.StatusBadRequest, detailResponse{Detail: "Multiple accounts use this email. Please contact support."}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusForbidden, detailResponse{Detail: "Authentication credentials were not provided."}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, detailResponse{Detail: "You do not have permission to perform this action."}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: "Product not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
