package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/torneoveteranos/tournament-system/brackets"
	"github.com/torneoveteranos/tournament-system/db"
	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
	"github.com/torneoveteranos/tournament-system/standings"
)

// PlayerStatDelta is one player's contribution in a submitted result.
// All fields default to zero and must be non-negative.
type PlayerStatDelta struct {
	PlayerID    int `json:"playerId"`
	Goals       int `json:"goals"`
	YellowCards int `json:"yellowCards"`
	RedCards    int `json:"redCards"`
	BlueCards   int `json:"blueCards"`
}

type SubmitResultInput struct {
	MatchID     int
	HomeScore   *int
	AwayScore   *int
	PlayerStats []PlayerStatDelta
	Role        models.UserRole
}

type SubmitResultOutput struct {
	Match     *models.Match `json:"match"`
	Group     *string       `json:"group,omitempty"`
	Standings []models.Team `json:"standings"`
}

type ResultService interface {
	SubmitResult(ctx context.Context, input SubmitResultInput) (*SubmitResultOutput, error)
}

type resultService struct {
	tx           db.Transactor
	matchRepo    repositories.MatchRepository
	teamRepo     repositories.TeamRepository
	playerRepo   repositories.PlayerRepository
	groupRepo    repositories.Phase2GroupRepository
	standingRepo repositories.GroupStandingRepository
	hub          *brackets.Hub
	logger       *slog.Logger
}

func NewResultService(
	tx db.Transactor,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	groupRepo repositories.Phase2GroupRepository,
	standingRepo repositories.GroupStandingRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		tx:           tx,
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		groupRepo:    groupRepo,
		standingRepo: standingRepo,
		hub:          hub,
		logger:       logger,
	}
}

// SubmitResult records a match result: it overwrites the match scores, adds
// the player stat deltas and recomputes the standings of the match's
// phase/group, all inside one transaction. Either every effect commits or
// none does.
func (s *resultService) SubmitResult(ctx context.Context, input SubmitResultInput) (*SubmitResultOutput, error) {
	if input.Role != models.RoleAdmin {
		return nil, ErrResultSubmitForbidden
	}
	if input.HomeScore == nil || input.AwayScore == nil || *input.HomeScore < 0 || *input.AwayScore < 0 {
		return nil, fmt.Errorf("%w (match %d)", ErrInvalidScore, input.MatchID)
	}
	for _, delta := range input.PlayerStats {
		if delta.PlayerID <= 0 || delta.Goals < 0 || delta.YellowCards < 0 || delta.RedCards < 0 || delta.BlueCards < 0 {
			return nil, fmt.Errorf("%w (player %d)", ErrInvalidPlayerStats, delta.PlayerID)
		}
	}

	var out *SubmitResultOutput
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByIDForUpdate(ctx, exec, input.MatchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return fmt.Errorf("%w (id %d)", ErrMatchNotFound, input.MatchID)
			}
			return fmt.Errorf("load match %d: %w", input.MatchID, err)
		}

		if err := s.matchRepo.UpdateScore(ctx, exec, match.ID, *input.HomeScore, *input.AwayScore); err != nil {
			return fmt.Errorf("update score of match %d: %w", match.ID, err)
		}
		match.HomeScore = input.HomeScore
		match.AwayScore = input.AwayScore

		for _, delta := range input.PlayerStats {
			// Deltas are additive: the caller submits each match's stats
			// exactly once, a resubmission counts twice.
			err := s.playerRepo.IncrementStats(ctx, exec,
				delta.PlayerID, delta.Goals, delta.YellowCards, delta.RedCards, delta.BlueCards)
			if err != nil {
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					return fmt.Errorf("%w (id %d)", ErrPlayerNotFound, delta.PlayerID)
				}
				return fmt.Errorf("update stats of player %d: %w", delta.PlayerID, err)
			}
		}

		table, err := s.recomputeScope(ctx, exec, match)
		if err != nil {
			return err
		}

		out = &SubmitResultOutput{Match: match, Group: match.GroupName, Standings: table}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "match result recorded",
			slog.Int("match_id", out.Match.ID),
			slog.String("phase", string(out.Match.Phase)))
	}
	s.broadcast(out)

	return out, nil
}

// recomputeScope rebuilds the standings of the match's phase/group from the
// full match set and persists the refreshed snapshot.
func (s *resultService) recomputeScope(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) ([]models.Team, error) {
	if match.Phase == models.PhaseTwo && match.GroupName != nil {
		groupName := *match.GroupName
		teams, err := s.groupRepo.ListTeamsByGroup(ctx, exec, groupName)
		if err != nil {
			return nil, fmt.Errorf("list teams of group %s: %w", groupName, err)
		}
		matches, err := s.matchRepo.ListByPhaseAndGroup(ctx, exec, models.PhaseTwo, groupName)
		if err != nil {
			return nil, fmt.Errorf("list matches of group %s: %w", groupName, err)
		}

		table := standings.Calculate(teams, matches)
		for pos, team := range table {
			st := &models.GroupStanding{
				GroupName: groupName,
				TeamID:    team.ID,
				Position:  pos + 1,
				PJ:        team.PJ, PG: team.PG, PE: team.PE, PP: team.PP,
				GF: team.GF, GC: team.GC, GD: team.GD, Pts: team.Pts,
			}
			if err := s.standingRepo.Upsert(ctx, exec, st); err != nil {
				return nil, fmt.Errorf("persist standing of team %d in group %s: %w", team.ID, groupName, err)
			}
		}
		return table, nil
	}

	teams, err := s.teamRepo.List(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.ListByPhase(ctx, exec, models.PhaseRegular)
	if err != nil {
		return nil, fmt.Errorf("list regular matches: %w", err)
	}

	table := standings.Calculate(teams, matches)
	for i := range table {
		if err := s.teamRepo.UpdateStats(ctx, exec, &table[i]); err != nil {
			return nil, fmt.Errorf("persist stats of team %d: %w", table[i].ID, err)
		}
	}
	return table, nil
}

func (s *resultService) broadcast(out *SubmitResultOutput) {
	if s.hub == nil {
		return
	}
	room := brackets.RoomRegular
	if out.Group != nil {
		room = brackets.StandingsRoom(*out.Group)
	}
	s.hub.BroadcastToRoom(room, brackets.PushMessage{
		Type:    "STANDINGS_UPDATED",
		Payload: out,
		Room:    room,
	})
}
