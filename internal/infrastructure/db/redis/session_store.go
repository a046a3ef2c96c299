package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in Redis.
//
//	session:<id>  hash {account_id, created_at}, expires after the session TTL
//	flash:<id>    list of JSON flashes, same TTL as its session
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, accountID int64) (*domain.Session, error) {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	key := sessionKey(sess.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"account_id", accountID,
			"created_at", now.Unix(),
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	key := sessionKey(id)

	var fields *redis.MapStringStringCmd
	var ttl *redis.DurationCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	values := fields.Val()
	if len(values) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	accountID, err := strconv.ParseInt(values["account_id"], 10, 64)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	created, _ := strconv.ParseInt(values["created_at"], 10, 64)

	sess := &domain.Session{
		ID:        id,
		AccountID: accountID,
		CreatedAt: time.Unix(created, 0).UTC(),
	}
	if d := ttl.Val(); d > 0 {
		sess.ExpiresAt = time.Now().UTC().Add(d)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id), flashKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) AddFlash(ctx context.Context, sessionID string, flash domain.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	key := flashKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add flash: %w", err)
	}
	return nil
}

func (s *SessionStore) PopFlashes(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	key := flashKey(sessionID)

	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}

	flashes := make([]domain.Flash, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var f domain.Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func sessionKey(id string) string { return "session:" + id }

func flashKey(id string) string { return "flash:" + id }
