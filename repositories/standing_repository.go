package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/torneoveteranos/tournament-system/models"
)

var ErrGroupStandingNotFound = errors.New("group standing not found")

// GroupStandingRepository stores the last-computed phase-2 group tables.
type GroupStandingRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, standing *models.GroupStanding) error
	ListByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]models.GroupStanding, error)
}

type postgresGroupStandingRepository struct {
	db *sql.DB
}

func NewPostgresGroupStandingRepository(db *sql.DB) GroupStandingRepository {
	return &postgresGroupStandingRepository{db: db}
}

func (r *postgresGroupStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupStandingRepository) Upsert(ctx context.Context, exec SQLExecutor, standing *models.GroupStanding) error {
	executor := r.getExecutor(exec)
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO phase2_standings
			(group_name, team_id, position, pj, pg, pe, pp, gf, gc, gd, pts, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (group_name, team_id) DO UPDATE SET
			position = EXCLUDED.position,
			pj = EXCLUDED.pj, pg = EXCLUDED.pg, pe = EXCLUDED.pe, pp = EXCLUDED.pp,
			gf = EXCLUDED.gf, gc = EXCLUDED.gc, gd = EXCLUDED.gd, pts = EXCLUDED.pts,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		standing.GroupName, standing.TeamID, standing.Position,
		standing.PJ, standing.PG, standing.PE, standing.PP,
		standing.GF, standing.GC, standing.GD, standing.Pts,
		standing.UpdatedAt,
	).Scan(&standing.ID)
}

func (r *postgresGroupStandingRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]models.GroupStanding, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, group_name, team_id, position, pj, pg, pe, pp, gf, gc, gd, pts, updated_at
		FROM phase2_standings
		WHERE group_name = $1
		ORDER BY position`
	rows, err := executor.QueryContext(ctx, query, groupName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.GroupStanding, 0)
	for rows.Next() {
		var s models.GroupStanding
		if scanErr := rows.Scan(
			&s.ID, &s.GroupName, &s.TeamID, &s.Position,
			&s.PJ, &s.PG, &s.PE, &s.PP, &s.GF, &s.GC, &s.GD, &s.Pts,
			&s.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
