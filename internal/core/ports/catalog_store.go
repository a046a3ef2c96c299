package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// CatalogStore is the data-access wrapper over the external catalog store.
// Implementations never return errors: failed reads yield empty results
// (nil for single rows) and failed writes yield WriteResult{Success: false}.
type CatalogStore interface {
	Products(ctx context.Context) []domain.Product
	Product(ctx context.Context, id int64) *domain.Product
	ProductsByCategory(ctx context.Context, category string) []domain.Product
	SearchProducts(ctx context.Context, query string) []domain.Product

	Offers(ctx context.Context) []domain.Offer
	Offer(ctx context.Context, id string) *domain.Offer
	CreateOffer(ctx context.Context, in domain.OfferInput) domain.WriteResult[domain.Offer]
	UpdateOffer(ctx context.Context, id string, in domain.OfferInput) domain.WriteResult[domain.Offer]
	DeleteOffer(ctx context.Context, id string) domain.WriteResult[domain.Offer]

	Users(ctx context.Context) []domain.ExternalUser
	User(ctx context.Context, id string) *domain.ExternalUser
	CreateUser(ctx context.Context, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser]
	UpdateUser(ctx context.Context, id string, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser]
	DeleteUser(ctx context.Context, id string) domain.WriteResult[domain.ExternalUser]

	// Ping probes table (users when empty) and reports its row count.
	Ping(ctx context.Context, table string) domain.PingResult
}
