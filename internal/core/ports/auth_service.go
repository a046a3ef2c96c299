package ports

import (
	"context"

	"github.com/vitrine/storefront/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	IsStaff         bool
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Account     *domain.Account
	Area        domain.Area
	RedirectURL string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
