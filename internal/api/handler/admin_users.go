package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/core/domain"
)

const adminUsersURL = "/admin/users/"

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users := h.store.Users(c.Request().Context())
	return h.render(c, "admin_users", "Users", users)
}

// ExtractUsers shows every column of the users collection.
func (h *AdminHandler) ExtractUsers(c echo.Context) error {
	users := h.store.Users(c.Request().Context())
	return h.render(c, "admin_users_extract", "Users extraction", users)
}

func (h *AdminHandler) AddUser(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_user_form", "Add user", newUserForm())
	}

	form := bindUserForm(c)
	res := h.store.CreateUser(c.Request().Context(), form.input(time.Now(), true))
	flashResult(h, c, res)
	return h.redirect(c, adminUsersURL)
}

func (h *AdminHandler) EditUser(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	user := h.store.User(ctx, id)
	if user == nil {
		h.flash(c, domain.FlashError, "User not found")
		return h.redirect(c, adminUsersURL)
	}
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_user_form", "Edit user", userFormFrom(user))
	}

	form := bindUserForm(c)
	res := h.store.UpdateUser(ctx, id, form.input(time.Now(), false))
	flashResult(h, c, res)
	return h.redirect(c, adminUsersURL)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	user := h.store.User(ctx, id)
	if user == nil {
		h.flash(c, domain.FlashError, "User not found")
		return h.redirect(c, adminUsersURL)
	}
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_user_delete", "Delete user", user)
	}

	res := h.store.DeleteUser(ctx, id)
	flashResult(h, c, res)
	return h.redirect(c, adminUsersURL)
}
