package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
)

type CreatePlayerInput struct {
	Name   string `json:"name"`
	TeamID int    `json:"teamId"`
}

type PlayerService interface {
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	Rename(ctx context.Context, id int, name string) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, nil, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players of team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.TeamID <= 0 {
		return nil, ErrPlayerTeamRequired
	}

	player := &models.Player{Name: name, TeamID: input.TeamID}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, fmt.Errorf("%w (id %d)", ErrTeamNotFound, input.TeamID)
		}
		return nil, fmt.Errorf("create player: %w", err)
	}
	return player, nil
}

func (s *playerService) Rename(ctx context.Context, id int, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	if err := s.playerRepo.Rename(ctx, nil, id, name); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, fmt.Errorf("%w (id %d)", ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("rename player %d: %w", id, err)
	}
	return s.playerRepo.GetByID(ctx, nil, id)
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return fmt.Errorf("%w (id %d)", ErrPlayerNotFound, id)
		}
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}
