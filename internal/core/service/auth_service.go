package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

// dummyHash is compared against when no account matches, so unknown emails
// cost the same bcrypt work as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-timing-equalizer"), bcrypt.DefaultCost)

// AuthService implements registration and login against the Account Store.
type AuthService struct {
	repo    ports.AccountRepository
	mirror  ports.Mirror
	targets domain.RedirectTargets
	cost    int
	log     zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, mirror ports.Mirror, targets domain.RedirectTargets, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:    repo,
		mirror:  mirror,
		targets: targets,
		cost:    bcrypt.DefaultCost,
		log:     log,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Register validates the input in a fixed order (password strength,
// confirmation, email uniqueness, username uniqueness) and stops at the first
// failure. On success the account is mirrored to the external store on a
// best-effort basis.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	if perr := domain.CheckPasswordStrength(in.Password, username, email); perr != nil {
		return nil, domain.NewValidationError("password", perr.Message)
	}
	if in.Password != in.PasswordConfirm {
		return nil, domain.NewValidationError("password_confirm", "Passwords do not match.")
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if taken {
		return nil, emailTakenError()
	}

	taken, err = s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		return nil, usernameTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      in.IsStaff,
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return nil, emailTakenError()
	case errors.Is(err, domain.ErrUsernameTaken):
		return nil, usernameTakenError()
	case err != nil:
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("account_id", created.ID).Str("username", created.Username).Msg("account registered")

	if s.mirror != nil {
		s.mirror.MirrorAccount(ctx, created)
	}
	return created, nil
}

// Login authenticates by email. Unknown emails, wrong passwords and inactive
// accounts all yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	matches, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	switch len(matches) {
	case 0:
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	case 1:
	default:
		s.log.Warn().Str("email", email).Int("matches", len(matches)).Msg("login rejected: duplicate accounts")
		return nil, domain.ErrDuplicateAccounts
	}

	account := matches[0]
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, account.ID); err != nil {
		s.log.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to update last login")
	}

	area := domain.AreaFor(account)
	return &ports.LoginResult{
		Account:     account,
		Area:        area,
		RedirectURL: s.targets.For(area),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func emailTakenError() error {
	return domain.NewValidationError("email", "An account with this email already exists.")
}

func usernameTakenError() error {
	return domain.NewValidationError("username", "This username is already taken.")
}
