// Package catalogstore is the data-access wrapper over the external catalog
// store, a PostgREST endpoint hosted by Supabase.
//
// Every operation maps to exactly one PostgREST request. Failures are logged
// and counted here and never returned to callers: reads yield empty results
// and writes yield a WriteResult with Success set to false.
package catalogstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/supabase-community/postgrest-go"

	"github.com/vitrine/storefront/internal/api/metrics"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

const restPath = "/rest/v1"

var _ ports.CatalogStore = (*Store)(nil)

type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co.
	URL    string
	Key    string
	Schema string
}

type Store struct {
	client  *postgrest.Client
	url     string
	keyRole string
	logger  zerolog.Logger
}

// New builds a store client. It does not contact the remote service.
func New(cfg Config, logger zerolog.Logger) (*Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalogstore: invalid url %q", cfg.URL)
	}
	if cfg.Key == "" {
		return nil, errors.New("catalogstore: missing access key")
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}

	client := postgrest.NewClient(base+restPath, schema, map[string]string{
		"apikey":        cfg.Key,
		"Authorization": "Bearer " + cfg.Key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("catalogstore: %w", client.ClientError)
	}

	s := &Store{
		client:  client,
		url:     base,
		keyRole: keyRole(cfg.Key),
		logger:  logger.With().Str("component", "catalogstore").Logger(),
	}

	ev := s.logger.Info().Str("url", base).Str("schema", schema)
	switch s.keyRole {
	case "":
		ev.Msg("catalog store configured with a non-JWT key")
	case "anon":
		ev.Str("key_role", s.keyRole).Msg("catalog store configured with an anon key; admin writes depend on row level security")
	default:
		ev.Str("key_role", s.keyRole).Msg("catalog store configured")
	}
	return s, nil
}

// KeyRole is the role claim of the access key, empty when the key is not a JWT.
func (s *Store) KeyRole() string { return s.keyRole }

// keyRole reads the role claim without verifying the signature; the key is
// our own configuration, the claim is only informational.
func keyRole(key string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// call runs one request with metrics and logging. postgrest-go has no context
// support, so ctx is only checked before the request is sent.
func (s *Store) call(ctx context.Context, table, op string, fn func() error) error {
	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = fn()
	}
	metrics.ObserveStoreCall(table, op, start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Str("operation", op).Msg("catalog store call failed")
	}
	return err
}

func fetch[T any](ctx context.Context, s *Store, table, op string, build func(*postgrest.QueryBuilder) *postgrest.FilterBuilder) ([]T, error) {
	var rows []T
	err := s.call(ctx, table, op, func() error {
		_, err := build(s.client.From(table)).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// list returns all matching rows, or an empty slice on failure.
func list[T any](ctx context.Context, s *Store, table, op string, build func(*postgrest.QueryBuilder) *postgrest.FilterBuilder) []T {
	rows, err := fetch[T](ctx, s, table, op, build)
	if err != nil {
		return []T{}
	}
	return rows
}

// first returns the first matching row, or nil when absent or on failure.
func first[T any](ctx context.Context, s *Store, table, op string, build func(*postgrest.QueryBuilder) *postgrest.FilterBuilder) *T {
	rows, err := fetch[T](ctx, s, table, op, build)
	if err != nil || len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

type messages struct {
	ok   string
	fail string
}

func write[T any](ctx context.Context, s *Store, table, op string, msg messages, build func(*postgrest.QueryBuilder) *postgrest.FilterBuilder) domain.WriteResult[T] {
	rows, err := fetch[T](ctx, s, table, op, build)
	if err != nil {
		return domain.WriteResult[T]{
			Message: fmt.Sprintf("%s: %v", msg.fail, err),
			Error:   err.Error(),
		}
	}
	res := domain.WriteResult[T]{Success: true, Message: msg.ok}
	if len(rows) > 0 {
		res.Data = &rows[0]
	}
	return res
}
