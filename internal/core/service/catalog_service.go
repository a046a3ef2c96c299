package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

type CatalogService struct {
	store  ports.CatalogStore
	logger zerolog.Logger
}

func NewCatalogService(store ports.CatalogStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ListProducts applies at most one filter: a non-empty search wins over a
// category, and with neither every product is returned.
func (s *CatalogService) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	search := strings.TrimSpace(filter.Search)
	category := strings.TrimSpace(filter.Category)

	var products []domain.Product
	switch {
	case search != "":
		products = s.store.SearchProducts(ctx, search)
	case category != "":
		products = s.store.ProductsByCategory(ctx, category)
	default:
		products = s.store.Products(ctx)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p := s.store.Product(ctx, id)
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Categories returns the distinct non-empty categories of all products in
// ascending order. Nothing is cached.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range s.store.Products(ctx) {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *CatalogService) Ping(ctx context.Context, table string) domain.PingResult {
	if table == "" {
		table = domain.TableUsers
	}
	res := s.store.Ping(ctx, table)
	if !res.Connected {
		s.logger.Warn().Str("table", table).Str("message", res.Message).Msg("catalog store probe failed")
	}
	return res
}
