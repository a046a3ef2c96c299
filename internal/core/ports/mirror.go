package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// MirrorJournal persists failed mirror attempts.
type MirrorJournal interface {
	Record(ctx context.Context, entry *domain.MirrorEntry) error
	ListPending(ctx context.Context, limit int) ([]*domain.MirrorEntry, error)
	Get(ctx context.Context, id string) (*domain.MirrorEntry, error)
	MarkResolved(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// Mirror copies local accounts into the external users collection.
type Mirror interface {
	// MirrorAccount is best-effort: failures are logged and journaled, never
	// returned.
	MirrorAccount(ctx context.Context, account *domain.Account)
	Pending(ctx context.Context) ([]*domain.MirrorEntry, error)
	Retry(ctx context.Context, id string) domain.WriteResult[domain.ExternalUser]
}
