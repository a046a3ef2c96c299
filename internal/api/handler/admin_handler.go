package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

// AdminHandler serves the staff console over the external users and offers
// collections. Every POST ends in a redirect carrying a flash message.
type AdminHandler struct {
	store    ports.CatalogStore
	sessions ports.SessionStore
	mirror   ports.Mirror
	log      zerolog.Logger
}

func NewAdminHandler(store ports.CatalogStore, sessions ports.SessionStore, mirror ports.Mirror, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{store: store, sessions: sessions, mirror: mirror, log: log}
}

// Index sends staff to the users screen.
func (h *AdminHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/admin/users/")
}

func (h *AdminHandler) flash(c echo.Context, level domain.FlashLevel, msg string) {
	sid := middleware.CurrentSessionID(c)
	if sid == "" {
		return
	}
	if err := h.sessions.AddFlash(c.Request().Context(), sid, domain.Flash{Level: level, Message: msg}); err != nil {
		h.log.Warn().Err(err).Msg("failed to store flash")
	}
}

// flashResult flashes a wrapper write outcome.
func flashResult[T any](h *AdminHandler, c echo.Context, res domain.WriteResult[T]) {
	if res.Success {
		h.flash(c, domain.FlashSuccess, res.Message)
		return
	}
	h.flash(c, domain.FlashError, res.Message)
}

// render pops pending flashes, appends extra ones and renders page.
func (h *AdminHandler) render(c echo.Context, page, title string, data any, extra ...domain.Flash) error {
	var flashes []domain.Flash
	if sid := middleware.CurrentSessionID(c); sid != "" {
		popped, err := h.sessions.PopFlashes(c.Request().Context(), sid)
		if err != nil {
			h.log.Warn().Err(err).Msg("failed to load flashes")
		}
		flashes = popped
	}
	flashes = append(flashes, extra...)
	return c.Render(http.StatusOK, page, newPageData(c, title, flashes, data))
}

func (h *AdminHandler) redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusFound, to)
}
