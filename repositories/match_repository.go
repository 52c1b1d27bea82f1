package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/torneoveteranos/tournament-system/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// GetByIDForUpdate locks the match row for the duration of the enclosing
	// transaction, serializing concurrent submissions for the same match.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) ([]models.Match, error)
	ListByPhaseAndGroup(ctx context.Context, exec SQLExecutor, phase models.MatchPhase, groupName string) ([]models.Match, error)
	CountByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) (int, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = "id, phase, group_name, round, home_team_id, away_team_id, home_score, away_score"

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.Phase, &m.GroupName, &m.Round,
		&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (phase, group_name, round, home_team_id, away_team_id, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := executor.QueryRowContext(ctx, query,
		match.Phase, match.GroupName, match.Round,
		match.HomeTeamID, match.AwayTeamID, match.HomeScore, match.AwayScore,
	).Scan(&match.ID)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	for _, match := range matches {
		if err := r.Create(ctx, exec, match); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
	return scanMatch(row)
}

func (r *postgresMatchRepository) ListByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE phase = $1 ORDER BY round, id`, phase)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (r *postgresMatchRepository) ListByPhaseAndGroup(ctx context.Context, exec SQLExecutor, phase models.MatchPhase, groupName string) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE phase = $1 AND group_name = $2 ORDER BY id`, phase, groupName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMatches(rows)
}

func collectMatches(rows *sql.Rows) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CountByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE phase = $1`, phase).Scan(&count)
	return count, err
}

// UpdateScore overwrites both scores. Submissions are idempotent at the match
// level: resubmitting replaces, it does not accumulate.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET home_score = $1, away_score = $2 WHERE id = $3`, homeScore, awayScore, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			}
		}
	}
	return err
}
