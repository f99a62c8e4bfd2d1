package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/auth"
	"github.com/ashirpar/clubserver/internal/repository"
)

// SessionService issues session tokens for registered users.
//
//	SessionHandler (HTTP) → SessionService → UserRepository (lookup)
//	                                       ↘ TokenService (sign)
type SessionService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *SessionService {
	return &SessionService{users: users, tokens: tokens, logger: logger}
}

// Issue signs a token for the user registered under email. The role baked
// into the token is the one stored at issuance time.
//
// It does NOT set cookies; that is the handler's job.
func (s *SessionService) Issue(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperror.ValidationFailed("email", "email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(auth.Identity{Email: user.Email, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("service/session: generating token for %s: %w", email, err)
	}

	s.logger.Info("session issued",
		slog.String("email", user.Email),
		slog.String("role", user.Role),
	)

	return token, nil
}
