package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/torneoveteranos/tournament-system/brackets"
	"github.com/torneoveteranos/tournament-system/db"
	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
	"github.com/torneoveteranos/tournament-system/standings"
)

type Phase2Service interface {
	// Initialize seeds phase 2 from the final regular-season table. It runs
	// once per season transition; a second call fails with
	// ErrPhase2AlreadyInitialized.
	Initialize(ctx context.Context, role models.UserRole) (*brackets.Phase2Bracket, error)
	GetGroups(ctx context.Context) (map[string][]models.Team, error)
	GetSchedule(ctx context.Context) (map[string][]models.Match, error)
	GetStandings(ctx context.Context) (map[string][]models.Team, error)
}

type phase2Service struct {
	tx           db.Transactor
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	groupRepo    repositories.Phase2GroupRepository
	standingRepo repositories.GroupStandingRepository
	cohortSize   int
	logger       *slog.Logger
}

func NewPhase2Service(
	tx db.Transactor,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	groupRepo repositories.Phase2GroupRepository,
	standingRepo repositories.GroupStandingRepository,
	logger *slog.Logger,
) Phase2Service {
	return &phase2Service{
		tx:           tx,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		groupRepo:    groupRepo,
		standingRepo: standingRepo,
		cohortSize:   brackets.DefaultCohortSize,
		logger:       logger,
	}
}

func (s *phase2Service) Initialize(ctx context.Context, role models.UserRole) (*brackets.Phase2Bracket, error) {
	if role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	var bracket *brackets.Phase2Bracket
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		// BuildPhase2 itself is not idempotent, so the guard lives here:
		// existing group assignments or phase-2 fixtures block a re-run.
		assigned, err := s.groupRepo.Count(ctx, exec)
		if err != nil {
			return fmt.Errorf("count group assignments: %w", err)
		}
		fixtures, err := s.matchRepo.CountByPhase(ctx, exec, models.PhaseTwo)
		if err != nil {
			return fmt.Errorf("count phase 2 fixtures: %w", err)
		}
		if assigned > 0 || fixtures > 0 {
			return ErrPhase2AlreadyInitialized
		}

		teams, err := s.teamRepo.List(ctx, exec)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		matches, err := s.matchRepo.ListByPhase(ctx, exec, models.PhaseRegular)
		if err != nil {
			return fmt.Errorf("list regular matches: %w", err)
		}
		final := standings.Calculate(teams, matches)

		bracket, err = brackets.BuildPhase2(final, s.cohortSize)
		if err != nil {
			return err
		}

		for _, name := range bracket.GroupNames() {
			for pos, team := range bracket.Groups[name] {
				assignment := &models.Phase2Group{GroupName: name, Position: pos + 1, TeamID: team.ID}
				if err := s.groupRepo.CreateBatch(ctx, exec, []*models.Phase2Group{assignment}); err != nil {
					return fmt.Errorf("persist group %s seat %d: %w", name, pos+1, err)
				}
			}
			for pos, team := range bracket.Standings[name] {
				st := &models.GroupStanding{GroupName: name, TeamID: team.ID, Position: pos + 1}
				if err := s.standingRepo.Upsert(ctx, exec, st); err != nil {
					return fmt.Errorf("persist initial standing of team %d: %w", team.ID, err)
				}
			}
		}

		fixtureRefs := make([]*models.Match, len(bracket.Matches))
		for i := range bracket.Matches {
			fixtureRefs[i] = &bracket.Matches[i]
		}
		if err := s.matchRepo.CreateBatch(ctx, exec, fixtureRefs); err != nil {
			return fmt.Errorf("persist phase 2 fixtures: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "phase 2 initialized",
			slog.Int("fixtures", len(bracket.Matches)),
			slog.Int("teams", s.cohortSize))
	}
	return bracket, nil
}

func (s *phase2Service) GetGroups(ctx context.Context) (map[string][]models.Team, error) {
	groups := make(map[string][]models.Team)
	for _, name := range []string{brackets.GroupA, brackets.GroupB} {
		teams, err := s.groupRepo.ListTeamsByGroup(ctx, nil, name)
		if err != nil {
			return nil, fmt.Errorf("list teams of group %s: %w", name, err)
		}
		if len(teams) > 0 {
			groups[name] = teams
		}
	}
	return groups, nil
}

func (s *phase2Service) GetSchedule(ctx context.Context) (map[string][]models.Match, error) {
	matches, err := s.matchRepo.ListByPhase(ctx, nil, models.PhaseTwo)
	if err != nil {
		return nil, fmt.Errorf("list phase 2 matches: %w", err)
	}
	schedule := make(map[string][]models.Match)
	for _, match := range matches {
		if match.GroupName == nil {
			continue
		}
		schedule[*match.GroupName] = append(schedule[*match.GroupName], match)
	}
	return schedule, nil
}

// GetStandings recomputes every group table from its match set. The persisted
// snapshot is not consulted: the match set is authoritative.
func (s *phase2Service) GetStandings(ctx context.Context) (map[string][]models.Team, error) {
	tables := make(map[string][]models.Team)
	for _, name := range []string{brackets.GroupA, brackets.GroupB} {
		teams, err := s.groupRepo.ListTeamsByGroup(ctx, nil, name)
		if err != nil {
			return nil, fmt.Errorf("list teams of group %s: %w", name, err)
		}
		if len(teams) == 0 {
			continue
		}
		matches, err := s.matchRepo.ListByPhaseAndGroup(ctx, nil, models.PhaseTwo, name)
		if err != nil {
			return nil, fmt.Errorf("list matches of group %s: %w", name, err)
		}
		tables[name] = standings.Calculate(teams, matches)
	}
	return tables, nil
}
