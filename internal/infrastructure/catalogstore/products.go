package catalogstore

import (
	"context"
	"strconv"

	"github.com/supabase-community/postgrest-go"

	"github.com/vitrine/storefront/internal/core/domain"
)

const productTable = domain.TableProducts

func (s *Store) Products(ctx context.Context) []domain.Product {
	return list[domain.Product](ctx, s, productTable, "list", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false)
	})
}

func (s *Store) Product(ctx context.Context, id int64) *domain.Product {
	return first[domain.Product](ctx, s, productTable, "get", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Eq("id", strconv.FormatInt(id, 10))
	})
}

func (s *Store) ProductsByCategory(ctx context.Context, category string) []domain.Product {
	return list[domain.Product](ctx, s, productTable, "by_category", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Eq("category", category)
	})
}

// SearchProducts matches query anywhere in the product name, ignoring case.
func (s *Store) SearchProducts(ctx context.Context, query string) []domain.Product {
	return list[domain.Product](ctx, s, productTable, "search", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Ilike("name", "*"+query+"*")
	})
}
