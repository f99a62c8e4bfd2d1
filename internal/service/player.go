package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/auth"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

// PlayerService manages the squad list.
type PlayerService struct {
	repo   repository.PlayerRepository
	logger *slog.Logger
}

// NewPlayerService creates a PlayerService.
func NewPlayerService(repo repository.PlayerRepository, logger *slog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

// PlayerInput is the body of POST /players.
type PlayerInput struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Role  string `json:"role"`
}

// Create adds a player on behalf of caller.
//
// Order of checks: the caller must be an admin (Forbidden), then every
// field must be present (Validation). The store is not touched unless both
// pass.
func (s *PlayerService) Create(ctx context.Context, caller auth.Identity, in PlayerInput) (*model.Player, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("non-admin tried to add a player", slog.String("email", caller.Email))
		return nil, apperror.Forbidden("forbidden access")
	}

	player := &model.Player{
		Name:  strings.TrimSpace(in.Name),
		Image: strings.TrimSpace(in.Image),
		Role:  strings.TrimSpace(in.Role),
	}

	switch {
	case player.Name == "":
		return nil, apperror.ValidationFailed("name", "name, image and role are required")
	case player.Image == "":
		return nil, apperror.ValidationFailed("image", "name, image and role are required")
	case player.Role == "":
		return nil, apperror.ValidationFailed("role", "name, image and role are required")
	}

	if err := s.repo.Create(ctx, player); err != nil {
		s.logger.Error("failed to create player",
			slog.String("name", player.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating player: %w", err)
	}

	s.logger.Info("player created",
		slog.String("id", player.ID),
		slog.String("name", player.Name),
		slog.String("by", caller.Email),
	)

	return player, nil
}

// List returns the whole squad.
func (s *PlayerService) List(ctx context.Context) ([]model.Player, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list players", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}
