package services

import (
	"context"
	"fmt"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
	"github.com/torneoveteranos/tournament-system/standings"
)

type StandingsService interface {
	// GetLeagueTable recomputes the regular-season table from the match set.
	GetLeagueTable(ctx context.Context) ([]models.Team, error)
	GetRegularSchedule(ctx context.Context) ([]models.Match, error)
}

type standingsService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
}

func NewStandingsService(teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository) StandingsService {
	return &standingsService{teamRepo: teamRepo, matchRepo: matchRepo}
}

func (s *standingsService) GetLeagueTable(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.ListByPhase(ctx, nil, models.PhaseRegular)
	if err != nil {
		return nil, fmt.Errorf("list regular matches: %w", err)
	}
	return standings.Calculate(teams, matches), nil
}

func (s *standingsService) GetRegularSchedule(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByPhase(ctx, nil, models.PhaseRegular)
	if err != nil {
		return nil, fmt.Errorf("list regular matches: %w", err)
	}
	return matches, nil
}
