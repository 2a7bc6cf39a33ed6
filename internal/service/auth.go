package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrewpolewoy/kokodi/internal/auth"
	"github.com/andrewpolewoy/kokodi/internal/domain"
)

// UserRepository is the identity store the auth service depends on.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
}

type AuthService struct {
	users  UserRepository
	tokens *auth.TokenProvider
	log    *slog.Logger
}

func NewAuthService(users UserRepository, tokens *auth.TokenProvider, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

const (
	minLoginLength    = 3
	minPasswordLength = 6
)

// Register creates an account and returns a signed token for it. A taken
// login fails with UserExists.
func (s *AuthService) Register(ctx context.Context, login, password, name string) (string, error) {
	if len(login) < minLoginLength {
		return "", domain.ErrRuleViolation("login must be at least 3 characters")
	}
	if len(password) < minPasswordLength {
		return "", domain.ErrRuleViolation("password must be at least 6 characters")
	}
	if name == "" {
		return "", domain.ErrRuleViolation("name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Name:         name,
	})
	if err != nil {
		return "", err
	}

	s.log.Info("user registered", "user_id", user.ID, "login", user.Login)
	return s.tokens.Generate(*user)
}

// Login verifies credentials and returns a signed token. An unknown login and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.NewError(domain.CodeUserNotFound, "")) {
			return "", domain.ErrBadCredentials()
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrBadCredentials()
	}

	s.log.Info("user logged in", "user_id", user.ID, "login", user.Login)
	return s.tokens.Generate(*user)
}
