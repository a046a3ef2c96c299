package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/core/domain"
)

const adminOffersURL = "/admin/offers/"

// ListOffers shows offers newest first. An empty list is also what a failed
// store read looks like, so it gets an info flash.
func (h *AdminHandler) ListOffers(c echo.Context) error {
	offers := h.store.Offers(c.Request().Context())
	if len(offers) == 0 {
		return h.render(c, "admin_offers", "Offers", offers,
			domain.Flash{Level: domain.FlashInfo, Message: "No offers found or catalog store unavailable."})
	}
	return h.render(c, "admin_offers", "Offers", offers)
}

func (h *AdminHandler) AddOffer(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_offer_form", "Add offer", offerForm{Stock: "0", Price: "0", Active: true})
	}

	form := bindOfferForm(c)
	in, err := form.input()
	if err != nil {
		return h.render(c, "admin_offer_form", "Add offer", form, formError(err))
	}
	res := h.store.CreateOffer(c.Request().Context(), in)
	flashResult(h, c, res)
	return h.redirect(c, adminOffersURL)
}

func (h *AdminHandler) EditOffer(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	offer := h.store.Offer(ctx, id)
	if offer == nil {
		h.flash(c, domain.FlashError, "Offer not found")
		return h.redirect(c, adminOffersURL)
	}
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_offer_form", "Edit offer", offerFormFrom(offer))
	}

	form := bindOfferForm(c)
	in, err := form.input()
	if err != nil {
		return h.render(c, "admin_offer_form", "Edit offer", form, formError(err))
	}
	res := h.store.UpdateOffer(ctx, id, in)
	flashResult(h, c, res)
	return h.redirect(c, adminOffersURL)
}

func (h *AdminHandler) DeleteOffer(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	offer := h.store.Offer(ctx, id)
	if offer == nil {
		h.flash(c, domain.FlashError, "Offer not found")
		return h.redirect(c, adminOffersURL)
	}
	if c.Request().Method != http.MethodPost {
		return h.render(c, "admin_offer_delete", "Delete offer", offer)
	}

	res := h.store.DeleteOffer(ctx, id)
	flashResult(h, c, res)
	return h.redirect(c, adminOffersURL)
}

func formError(err error) domain.Flash {
	return domain.Flash{Level: domain.FlashError, Message: "Form error: " + err.Error()}
}
