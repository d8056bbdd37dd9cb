package app

import (
	"context"

	"villamarket/internal/auth"
	"villamarket/internal/domain"
)

// UserService owns accounts and credentials. Its profile lookup doubles as
// the identity-verification endpoint the other services call.
type UserService struct {
	repo   domain.UserRepository
	tokens domain.TokenService
}

func NewUserService(repo domain.UserRepository, tokens domain.TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, name, email, phone, password, role string) (domain.User, error) {
	if password == "" {
		return domain.User{}, domain.E(domain.KindInvalid, "password is required")
	}
	if role == "" {
		role = "user"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.Wrap(domain.KindInternal, "hash password", err)
	}
	return s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		Role:         role,
		PasswordHash: hash,
	})
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable on purpose.
		return "", domain.Wrap(domain.KindUnauthorized, "invalid email or password", err)
	}
	if !auth.ComparePassword(u.PasswordHash, password) {
		return "", domain.E(domain.KindUnauthorized, "invalid email or password")
	}
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.Wrap(domain.KindInternal, "issue token", err)
	}
	return tok, nil
}

// Profile verifies the bearer credential locally and returns the caller's
// user record.
func (s *UserService) Profile(ctx context.Context, credential string) (domain.User, error) {
	identity, err := s.tokens.Verify(credential)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		// A valid token for a vanished user is still an auth failure.
		return domain.User{}, domain.Wrap(domain.KindUnauthorized, "invalid credential", err)
	}
	return u, nil
}
