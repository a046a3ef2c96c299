package catalogstore

import (
	"context"

	"github.com/supabase-community/postgrest-go"

	"github.com/vitrine/storefront/internal/core/domain"
)

const offerTable = domain.TableOffers

// Offers returns every offer, newest first.
func (s *Store) Offers(ctx context.Context) []domain.Offer {
	return list[domain.Offer](ctx, s, offerTable, "list", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Order("created_at", &postgrest.OrderOpts{Ascending: false})
	})
}

func (s *Store) Offer(ctx context.Context, id string) *domain.Offer {
	return first[domain.Offer](ctx, s, offerTable, "get", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Eq("id", id).Limit(1, "")
	})
}

func (s *Store) CreateOffer(ctx context.Context, in domain.OfferInput) domain.WriteResult[domain.Offer] {
	msg := messages{ok: "Offer created successfully", fail: "Error creating offer"}
	return write[domain.Offer](ctx, s, offerTable, "create", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Insert(in, false, "", "representation", "")
	})
}

func (s *Store) UpdateOffer(ctx context.Context, id string, in domain.OfferInput) domain.WriteResult[domain.Offer] {
	msg := messages{ok: "Offer updated successfully", fail: "Error updating offer"}
	return write[domain.Offer](ctx, s, offerTable, "update", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Update(in, "representation", "").Eq("id", id)
	})
}

func (s *Store) DeleteOffer(ctx context.Context, id string) domain.WriteResult[domain.Offer] {
	msg := messages{ok: "Offer deleted successfully", fail: "Error deleting offer"}
	return write[domain.Offer](ctx, s, offerTable, "delete", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Delete("representation", "").Eq("id", id)
	})
}
