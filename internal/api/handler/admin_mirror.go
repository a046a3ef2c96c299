package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/core/domain"
)

const adminMirrorURL = "/admin/mirror/"

// ListMirror shows accounts whose copy into the external users collection
// failed and has not been retried successfully.
func (h *AdminHandler) ListMirror(c echo.Context) error {
	entries, err := h.mirror.Pending(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list mirror journal failed")
		return h.render(c, "admin_mirror", "Mirror journal", entries,
			domain.Flash{Level: domain.FlashError, Message: "Mirror journal unavailable."})
	}
	return h.render(c, "admin_mirror", "Mirror journal", entries)
}

func (h *AdminHandler) RetryMirror(c echo.Context) error {
	res := h.mirror.Retry(c.Request().Context(), c.Param("id"))
	flashResult(h, c, res)
	return h.redirect(c, adminMirrorURL)
}
