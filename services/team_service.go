package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
	"github.com/torneoveteranos/tournament-system/storage"
)

type TeamService interface {
	// GetTeam returns the team with its roster and crest URL populated.
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w (id %d)", ErrTeamNotFound, id)
		}
		return nil, fmt.Errorf("get team %d: %w", id, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("list players of team %d: %w", id, err)
	}
	team.Players = players
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	for i := range teams {
		populateTeamCrestURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w (id %d)", ErrTeamNotFound, teamID)
		}
		return nil, fmt.Errorf("get team %d: %w", teamID, err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/crest%s", teamID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("upload crest of team %d: %w", teamID, err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, nil, teamID, &key); err != nil {
		return nil, fmt.Errorf("store crest key of team %d: %w", teamID, err)
	}
	if oldKey != nil && *oldKey != key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "failed to delete previous crest",
				slog.Int("team_id", teamID), slog.Any("error", delErr))
		}
	}

	team.CrestKey = &key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}
