package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
)

type StatsService interface {
	GetScorers(ctx context.Context) ([]models.ScorerRow, error)
	GetCards(ctx context.Context) ([]models.CardRow, error)
	GetOffense(ctx context.Context) ([]models.OffenseRow, error)
	GetDefense(ctx context.Context) ([]models.DefenseRow, error)
	GetSummary(ctx context.Context) (*models.StatsSummary, error)
}

type statsService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewStatsService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) StatsService {
	return &statsService{playerRepo: playerRepo, teamRepo: teamRepo}
}

func (s *statsService) GetScorers(ctx context.Context) ([]models.ScorerRow, error) {
	scorers, err := s.playerRepo.ListScorers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list scorers: %w", err)
	}
	return scorers, nil
}

func (s *statsService) GetCards(ctx context.Context) ([]models.CardRow, error) {
	carded, err := s.playerRepo.ListCarded(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list carded players: %w", err)
	}
	return carded, nil
}

func (s *statsService) GetOffense(ctx context.Context) ([]models.OffenseRow, error) {
	offense, err := s.teamRepo.ListByOffense(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list offense ranking: %w", err)
	}
	return offense, nil
}

func (s *statsService) GetDefense(ctx context.Context) ([]models.DefenseRow, error) {
	defense, err := s.teamRepo.ListByDefense(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list defense ranking: %w", err)
	}
	return defense, nil
}

// GetSummary fetches the four statistics boards concurrently.
func (s *statsService) GetSummary(ctx context.Context) (*models.StatsSummary, error) {
	summary := &models.StatsSummary{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scorers, err := s.GetScorers(gCtx)
		summary.Scorers = scorers
		return err
	})
	g.Go(func() error {
		cards, err := s.GetCards(gCtx)
		summary.Cards = cards
		return err
	})
	g.Go(func() error {
		offense, err := s.GetOffense(gCtx)
		summary.Offense = offense
		return err
	})
	g.Go(func() error {
		defense, err := s.GetDefense(gCtx)
		summary.Defense = defense
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
