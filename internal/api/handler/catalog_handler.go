package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListProducts lists products, optionally filtered.
//
// @Summary      List products
// @Description  search takes precedence over category; with neither, every product is returned.
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Exact category"
// @Param        search    query     string  false  "Case-insensitive partial name match"
// @Success      200       {object}  productListResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/products/ [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := ports.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	products, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error retrieving products"})
	}
	return c.JSON(http.StatusOK, productListResponse{
		Products: toProductListItems(products),
		Count:    len(products),
	})
}

// GetProduct returns one product.
//
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/products/{id}/ [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Product not found"})
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Product not found"})
	case err != nil:
		h.log.Error().Err(err).Int64("product_id", id).Msg("get product failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error retrieving product"})
	}
	return c.JSON(http.StatusOK, product)
}

// Categories lists the distinct product categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/categories/ [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list categories failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error retrieving categories"})
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories, Count: len(categories)})
}

// Ping probes the external catalog store.
//
// @Summary      Catalog store connectivity probe
// @Tags         catalog
// @Produce      json
// @Param        table  query     string  false  "Table to probe (default users)"
// @Success      200    {object}  domain.PingResult
// @Failure      503    {object}  domain.PingResult
// @Router       /api/ping/ [get]
func (h *CatalogHandler) Ping(c echo.Context) error {
	res := h.catalog.Ping(c.Request().Context(), c.QueryParam("table"))
	if !res.Connected {
		return c.JSON(http.StatusServiceUnavailable, res)
	}
	return c.JSON(http.StatusOK, res)
}
