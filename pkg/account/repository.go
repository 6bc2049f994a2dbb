package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases.
var (
	ErrNotFound           = errors.New("account not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// Repository abstracts account persistence from the domain layer.
type Repository interface {
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (Account, error)
}

// TokenGenerator abstracts token creation (e.g., JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, a Account) (string, error)
}
