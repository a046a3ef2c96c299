package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateAccounts   = errors.New("multiple accounts share this email")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrMirrorEntryNotFound = errors.New("mirror entry not found")
)

// Account is a local user account from the Account Store. It is the only
// record consulted for authentication decisions.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// PublicAccount is the subset of an account exposed over the API.
type PublicAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		IsStaff:  a.IsStaff,
	}
}
