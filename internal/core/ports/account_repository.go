package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// AccountRepository defines persistence for local accounts. Email and
// username lookups are case-insensitive.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// ListByEmail returns every account whose email matches, so callers can
	// detect duplicates.
	ListByEmail(ctx context.Context, email string) ([]*domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	TouchLastLogin(ctx context.Context, id int64) error
}
