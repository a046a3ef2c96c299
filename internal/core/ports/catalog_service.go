package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// ProductFilter selects products. Search wins over Category when both are set.
type ProductFilter struct {
	Category string
	Search   string
}

// CatalogService defines the read-side catalog use cases.
type CatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Ping(ctx context.Context, table string) domain.PingResult
}
