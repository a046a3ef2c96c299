package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/api/metrics"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

const pendingMirrorLimit = 200

// MirrorService copies local accounts into the external users collection.
// Failures are logged, counted and journaled but never returned to the
// registration flow.
type MirrorService struct {
	store   ports.CatalogStore
	journal ports.MirrorJournal
	logger  zerolog.Logger
}

func NewMirrorService(store ports.CatalogStore, journal ports.MirrorJournal, logger zerolog.Logger) *MirrorService {
	if journal == nil {
		journal = NoopMirrorJournal{}
	}
	return &MirrorService{store: store, journal: journal, logger: logger}
}

func (s *MirrorService) MirrorAccount(ctx context.Context, account *domain.Account) {
	payload := domain.MirrorPayload(account)
	res := s.store.CreateUser(ctx, payload)
	if res.Success {
		s.logger.Debug().Int64("account_id", account.ID).Msg("account mirrored")
		return
	}

	metrics.MirrorFailuresTotal.Inc()
	s.logger.Warn().
		Int64("account_id", account.ID).
		Str("username", account.Username).
		Str("error", res.Error).
		Msg("account mirror failed")

	now := time.Now().UTC()
	entry := &domain.MirrorEntry{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Username:  account.Username,
		Payload:   payload,
		Attempts:  1,
		LastError: res.Error,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Error().Err(err).Int64("account_id", account.ID).Msg("failed to journal mirror failure")
	}
}

func (s *MirrorService) Pending(ctx context.Context) ([]*domain.MirrorEntry, error) {
	return s.journal.ListPending(ctx, pendingMirrorLimit)
}

// Retry re-sends a journaled payload. The entry is resolved on success and
// its attempt counter bumped on failure.
func (s *MirrorService) Retry(ctx context.Context, id string) domain.WriteResult[domain.ExternalUser] {
	entry, err := s.journal.Get(ctx, id)
	if err != nil {
		msg := "Mirror entry could not be loaded"
		if errors.Is(err, domain.ErrMirrorEntryNotFound) {
			msg = "Mirror entry not found"
		}
		return domain.WriteResult[domain.ExternalUser]{Message: msg, Error: err.Error()}
	}
	if entry.Resolved {
		return domain.WriteResult[domain.ExternalUser]{Success: true, Message: "Mirror entry already resolved"}
	}

	res := s.store.CreateUser(ctx, entry.Payload)
	if !res.Success {
		metrics.MirrorFailuresTotal.Inc()
		if err := s.journal.MarkFailed(ctx, id, res.Error); err != nil {
			s.logger.Error().Err(err).Str("entry_id", id).Msg("failed to update mirror entry")
		}
		return res
	}

	if err := s.journal.MarkResolved(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("entry_id", id).Msg("failed to resolve mirror entry")
	}
	s.logger.Info().Str("entry_id", id).Int64("account_id", entry.AccountID).Msg("mirror entry resolved")
	return res
}

// NoopMirrorJournal is used when no journal backend is reachable. Failures
// are then only logged and counted.
type NoopMirrorJournal struct{}

func (NoopMirrorJournal) Record(context.Context, *domain.MirrorEntry) error { return nil }

func (NoopMirrorJournal) ListPending(context.Context, int) ([]*domain.MirrorEntry, error) {
	return nil, nil
}

func (NoopMirrorJournal) Get(context.Context, string) (*domain.MirrorEntry, error) {
	return nil, domain.ErrMirrorEntryNotFound
}

func (NoopMirrorJournal) MarkResolved(context.Context, string) error { return nil }

func (NoopMirrorJournal) MarkFailed(context.Context, string, string) error { return nil }
