package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

// PagesHandler serves the public HTML pages. Login and registration pages
// post to the JSON auth API from the browser.
type PagesHandler struct {
	catalog  ports.CatalogService
	loginURL string
}

func NewPagesHandler(catalog ports.CatalogService, loginURL string) *PagesHandler {
	return &PagesHandler{catalog: catalog, loginURL: loginURL}
}

type catalogPage struct {
	Search     string
	Category   string
	Categories []string
	Products   []domain.Product
}

func (h *PagesHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", newPageData(c, "Welcome", nil, nil))
}

func (h *PagesHandler) Login(c echo.Context) error {
	return c.Render(http.StatusOK, "login", newPageData(c, "Log in", nil, nil))
}

func (h *PagesHandler) Register(c echo.Context) error {
	return c.Render(http.StatusOK, "register", newPageData(c, "Register", nil, nil))
}

// UserDashboard requires a session; anonymous visitors go to the login page.
func (h *PagesHandler) UserDashboard(c echo.Context) error {
	if middleware.CurrentAccount(c) == nil {
		return c.Redirect(http.StatusFound, h.loginURL+"?next="+url.QueryEscape(c.Request().RequestURI))
	}
	return c.Render(http.StatusOK, "user_dashboard", newPageData(c, "My account", nil, nil))
}

func (h *PagesHandler) Catalog(c echo.Context) error {
	ctx := c.Request().Context()
	page := catalogPage{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	}

	products, err := h.catalog.ListProducts(ctx, ports.ProductFilter{Category: page.Category, Search: page.Search})
	if err != nil {
		return err
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	page.Products = products
	page.Categories = categories
	return c.Render(http.StatusOK, "catalog", newPageData(c, "Catalog", nil, page))
}

func (h *PagesHandler) ProductDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "product_detail", newPageData(c, product.Name, nil, product))
}
