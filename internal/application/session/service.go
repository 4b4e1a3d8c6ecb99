package session

import (
	"context"
	"errors"

	"github.com/go-restaurant-api/internal/application/auth"
	"github.com/go-restaurant-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token   string
	Email   string
	Profile domain.PublicProfile
}

type Service interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
	Profile(ctx context.Context, email string) (*domain.Account, error)
}

type accountStore interface {
	Get(ctx context.Context, email string) (*domain.Account, error)
}

type jwtSigner interface {
	Sign(userID, email string) (string, error)
}

type service struct {
	accounts    accountStore
	jwtProvider jwtSigner
}

type ServiceDeps struct {
	AccountRepo accountStore
	JWTProvider jwtSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{accounts: deps.AccountRepo, jwtProvider: deps.JWTProvider}
}

// Login checks the credentials of a verified account and issues a token.
// An unverified account is refused before the password is looked at.
func (s *service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || rawPassword == "" {
		return nil, domain.NewError(domain.ErrValidation, "Email & Password required")
	}
	acc, err := s.accounts.Get(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	if !acc.Verified {
		return nil, domain.NewError(domain.ErrUnverified, "Please verify your email first")
	}
	if acc.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*acc.PasswordHash), []byte(rawPassword)) != nil {
		return nil, domain.NewError(domain.ErrWrongPassword, "Wrong password")
	}

	token, err := s.jwtProvider.Sign(acc.AccountID, acc.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Email: acc.Email, Profile: acc.Profile()}, nil
}

func (s *service) Profile(ctx context.Context, email string) (*domain.Account, error) {
	acc, err := s.accounts.Get(ctx, auth.NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, "User not found")
	}
	return acc, err
}
