package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vitrine/storefront/internal/core/domain"
)

// userForm is the admin form for an external user. Values are passed through
// as typed; the external store is the only validator.
type userForm struct {
	Email          string
	FullName       string
	Role           string
	Provider       string
	EmailConfirmed bool
}

func bindUserForm(c echo.Context) userForm {
	return userForm{
		Email:          strings.TrimSpace(c.FormValue("email")),
		FullName:       strings.TrimSpace(c.FormValue("full_name")),
		Role:           valueOr(c.FormValue("role"), domain.ExternalRoleUser),
		Provider:       valueOr(c.FormValue("provider"), domain.ExternalProviderEmail),
		EmailConfirmed: checkbox(c.FormValue("email_confirmed")),
	}
}

func userFormFrom(u *domain.ExternalUser) userForm {
	return userForm{
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Provider:       u.Provider,
		EmailConfirmed: u.EmailConfirmed,
	}
}

func newUserForm() userForm {
	return userForm{Role: domain.ExternalRoleUser, Provider: domain.ExternalProviderEmail}
}

// input builds the write payload. created is set for new records only.
func (f userForm) input(now time.Time, created bool) domain.ExternalUserInput {
	ts := domain.NewTimestamp(now.UTC())
	in := domain.ExternalUserInput{
		Email:          f.Email,
		FullName:       f.FullName,
		Role:           f.Role,
		Provider:       f.Provider,
		EmailConfirmed: f.EmailConfirmed,
		UpdatedAt:      &ts,
	}
	if created {
		in.CreatedAt = &ts
	}
	return in
}

// offerForm keeps raw strings so a rejected form can be shown back as typed.
type offerForm struct {
	Title       string
	Price       string
	Description string
	Image       string
	Category    string
	Stock       string
	Active      bool
}

func bindOfferForm(c echo.Context) offerForm {
	return offerForm{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Price:       strings.TrimSpace(c.FormValue("price")),
		Description: c.FormValue("description"),
		Image:       strings.TrimSpace(c.FormValue("image")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Stock:       strings.TrimSpace(c.FormValue("stock")),
		Active:      checkbox(c.FormValue("active")),
	}
}

func offerFormFrom(o *domain.Offer) offerForm {
	return offerForm{
		Title:       o.Title,
		Price:       o.Price.String(),
		Description: o.Description,
		Image:       o.Image,
		Category:    o.Category,
		Stock:       strconv.Itoa(o.Stock),
		Active:      o.Active,
	}
}

// input coerces the numeric fields. Blank numbers become zero.
func (f offerForm) input() (domain.OfferInput, error) {
	price := decimal.Zero
	if f.Price != "" {
		p, err := decimal.NewFromString(f.Price)
		if err != nil {
			return domain.OfferInput{}, fmt.Errorf("invalid price %q", f.Price)
		}
		price = p
	}

	stock := 0
	if f.Stock != "" {
		s, err := strconv.Atoi(f.Stock)
		if err != nil {
			return domain.OfferInput{}, fmt.Errorf("invalid stock %q", f.Stock)
		}
		stock = s
	}

	return domain.OfferInput{
		Title:       f.Title,
		Price:       price,
		Description: f.Description,
		Image:       f.Image,
		Category:    f.Category,
		Stock:       stock,
		Active:      f.Active,
	}, nil
}

func checkbox(v string) bool {
	return v == "on"
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
