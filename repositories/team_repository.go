package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/torneoveteranos/tournament-system/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already in use")
)

type TeamRepository interface {
	List(ctx context.Context, exec SQLExecutor) ([]models.Team, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, team *models.Team) error
	UpdateCrestKey(ctx context.Context, exec SQLExecutor, id int, crestKey *string) error
	ListByOffense(ctx context.Context, exec SQLExecutor) ([]models.OffenseRow, error)
	ListByDefense(ctx context.Context, exec SQLExecutor) ([]models.DefenseRow, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = "id, name, pj, pg, pe, pp, gf, gc, gd, pts, crest_key"

func scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.PJ, &t.PG, &t.PE, &t.PP,
		&t.GF, &t.GC, &t.GD, &t.Pts, &t.CrestKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Team, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

// UpdateStats rewrites the derived stat snapshot. Only the standings engine
// should call this.
func (r *postgresTeamRepository) UpdateStats(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE teams
		SET pj = $1, pg = $2, pe = $3, pp = $4, gf = $5, gc = $6, gd = $7, pts = $8
		WHERE id = $9`
	result, err := executor.ExecContext(ctx, query,
		team.PJ, team.PG, team.PE, team.PP, team.GF, team.GC, team.GD, team.Pts, team.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCrestKey(ctx context.Context, exec SQLExecutor, id int, crestKey *string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE teams SET crest_key = $1 WHERE id = $2`, crestKey, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ListByOffense(ctx context.Context, exec SQLExecutor) ([]models.OffenseRow, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT id, name, gf FROM teams ORDER BY gf DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.OffenseRow, 0)
	for rows.Next() {
		var row models.OffenseRow
		if scanErr := rows.Scan(&row.TeamID, &row.Name, &row.GF); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresTeamRepository) ListByDefense(ctx context.Context, exec SQLExecutor) ([]models.DefenseRow, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT id, name, gc FROM teams ORDER BY gc ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.DefenseRow, 0)
	for rows.Next() {
		var row models.DefenseRow
		if scanErr := rows.Scan(&row.TeamID, &row.Name, &row.GC); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key" { // unique_violation
			return ErrTeamNameConflict
		}
	}
	return err
}
