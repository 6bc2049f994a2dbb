package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthResult carries the authenticated account together with a fresh token.
type AuthResult struct {
	Account Account
	Token   string
}

// UseCase describes registration, authentication and profile management.
type UseCase interface {
	Register(ctx context.Context, name, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Get(ctx context.Context, id uuid.UUID) (Account, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (Account, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) (string, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	tokens TokenGenerator
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, tokens TokenGenerator) UseCase {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if len(password) < 6 {
		return AuthResult{}, ErrPasswordTooShort
	}

	hash, err := HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}
	now := time.Now().UTC()
	a := Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleMember,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, a)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: a, Token: token}, nil
}

// Login authenticates by email and password. An unknown email fails with
// ErrInvalidCredentials; no account is ever created on the login path.
func (s *service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	a, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !VerifyPassword(a.PasswordHash, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !a.IsActive {
		return AuthResult{}, ErrInactiveAccount
	}
	now := time.Now().UTC()
	a, err = s.repo.Update(ctx, a.ID, Update{LastLogin: &now})
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, a)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: a, Token: token}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateName(ctx context.Context, id uuid.UUID, name string) (Account, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return Account{}, errors.New("name must be at least 2 characters")
	}
	return s.repo.Update(ctx, id, Update{Name: &name})
}

// ChangePassword verifies the current password, stores a new credential and
// returns a fresh token.
func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !VerifyPassword(a.PasswordHash, current) {
		return "", ErrInvalidCredentials
	}
	if len(next) < 6 {
		return "", ErrPasswordTooShort
	}
	hash, err := HashPassword(next)
	if err != nil {
		return "", err
	}
	a, err = s.repo.Update(ctx, id, Update{PasswordHash: &hash})
	if err != nil {
		return "", err
	}
	return s.tokens.Generate(ctx, a)
}

// Deactivate flips the active flag; the record is never physically deleted.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := s.repo.Update(ctx, id, Update{IsActive: &inactive})
	return err
}
