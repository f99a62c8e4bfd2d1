// Package service contains the business rules that sit between the HTTP
// handlers and the repositories.
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the store
//
// Services take repository interfaces, never a concrete backend, and return
// apperror values that the handler maps to status codes. None of them know
// about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

// UserService handles registration and profile lookups.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// RegisterInput is the body of POST /users.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
}

// RegisterResult tells the caller whether a new record was written.
type RegisterResult struct {
	Created bool        `json:"created"`
	User    *model.User `json:"user"`
}

// Register creates a user on first call and returns the existing record on
// any later call with the same email.
//
// The existence check runs before the insert, and the store's unique email
// index catches the case where two registrations race past the check: the
// loser gets a conflict, re-reads, and reports the winner's record.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, apperror.ValidationFailed("role",
			fmt.Sprintf("role must be %q or %q", model.RoleUser, model.RoleAdmin))
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return &RegisterResult{Created: false, User: existing}, nil
	case !errors.Is(err, apperror.ErrNotFound):
		s.logger.Error("failed to look up user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		PhotoURL: strings.TrimSpace(in.PhotoURL),
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, fmt.Errorf("registering user: %w", getErr)
			}
			return &RegisterResult{Created: false, User: existing}, nil
		}
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("email", user.Email),
		slog.String("role", user.Role),
	)

	return &RegisterResult{Created: true, User: user}, nil
}

// GetByEmail returns the user with that email or an apperror.ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	return s.repo.GetByEmail(ctx, email)
}
