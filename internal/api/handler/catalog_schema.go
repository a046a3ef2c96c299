package handler

import (
	"github.com/shopspring/decimal"

	"github.com/vitrine/storefront/internal/core/domain"
)

// productListItem is the reduced projection used by listings.
type productListItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
}

type productListResponse struct {
	Products []productListItem `json:"products"`
	Count    int               `json:"count"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toProductListItems(products []domain.Product) []productListItem {
	items := make([]productListItem, 0, len(products))
	for _, p := range products {
		items = append(items, productListItem{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Category:      p.Category,
			ImageURL:      p.ImageURL,
			StockQuantity: p.StockQuantity,
			IsActive:      p.IsActive,
		})
	}
	return items
}
