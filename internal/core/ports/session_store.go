package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// SessionStore keeps server-side sessions and their flash messages.
type SessionStore interface {
	Create(ctx context.Context, accountID int64) (*domain.Session, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error

	AddFlash(ctx context.Context, sessionID string, flash domain.Flash) error
	// PopFlashes returns queued flashes in insertion order and clears them.
	PopFlashes(ctx context.Context, sessionID string) ([]domain.Flash, error)
}
