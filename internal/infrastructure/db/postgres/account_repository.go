package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

const (
	uniqueViolation    = "23505"
	usernameUniqueName = "accounts_username_lower_key"
	emailUniqueName    = "accounts_email_lower_key"

	accountColumns = `id, username, email, password_hash, is_staff, is_active, date_joined, last_login`
)

var _ ports.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	joined := a.DateJoined
	if joined.IsZero() {
		joined = time.Now().UTC()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (username, email, password_hash, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+accountColumns,
		a.Username, a.Email, a.PasswordHash, a.IsStaff, a.IsActive, joined,
	)
	created, err := scanAccount(row)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

// ListByEmail returns every account whose email matches ignoring case. The
// unique index makes more than one match unexpected, but callers still check.
func (r *AccountRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
		ORDER BY id`, email)
	if err != nil {
		return nil, fmt.Errorf("list accounts by email: %w", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`, email)
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE LOWER(username) = LOWER($1))`, username)
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Ping is used by the readiness probe.
func (r *AccountRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *AccountRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return found, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.IsStaff,
		&a.IsActive,
		&a.DateJoined,
		&a.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// mapUniqueViolation turns a unique index violation into the matching domain
// error, or returns nil for any other error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case emailUniqueName:
		return domain.ErrEmailTaken
	case usernameUniqueName:
		return domain.ErrUsernameTaken
	}
	return nil
}
