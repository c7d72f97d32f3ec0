package application

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sfvc/calendario-nodo/internal/domain"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
	"github.com/sfvc/calendario-nodo/pkg/token"
)

type AuthService struct {
	userRepo output.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo output.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login verifies the credentials and issues a fresh bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	signed, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Refresh re-issues a token from a still-valid one and returns the current
// user record. An invalid or expired token yields ErrTokenInvalid.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (*entities.User, string, error) {
	user, err := s.UserFromToken(ctx, tokenString)
	if err != nil {
		return nil, "", err
	}
	signed, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// UserFromToken resolves the bearer token to its current user record.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*entities.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}
