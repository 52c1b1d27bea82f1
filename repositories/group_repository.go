package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/torneoveteranos/tournament-system/models"
)

var ErrGroupTeamConflict = errors.New("team already assigned to a phase 2 group")

// Phase2GroupRepository stores the fixed season-transition group assignment.
// The unique team constraint doubles as the re-initialization guard.
type Phase2GroupRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, groups []*models.Phase2Group) error
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.Phase2Group, error)
	ListTeamsByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]models.Team, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
}

type postgresPhase2GroupRepository struct {
	db *sql.DB
}

func NewPostgresPhase2GroupRepository(db *sql.DB) Phase2GroupRepository {
	return &postgresPhase2GroupRepository{db: db}
}

func (r *postgresPhase2GroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPhase2GroupRepository) CreateBatch(ctx context.Context, exec SQLExecutor, groups []*models.Phase2Group) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO phase2_groups (group_name, position, team_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	for _, group := range groups {
		err := executor.QueryRowContext(ctx, query, group.GroupName, group.Position, group.TeamID).Scan(&group.ID)
		if err != nil {
			return r.handleGroupError(err)
		}
	}
	return nil
}

func (r *postgresPhase2GroupRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.Phase2Group, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx,
		`SELECT id, group_name, position, team_id FROM phase2_groups ORDER BY group_name, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]models.Phase2Group, 0)
	for rows.Next() {
		var g models.Phase2Group
		if scanErr := rows.Scan(&g.ID, &g.GroupName, &g.Position, &g.TeamID); scanErr != nil {
			return nil, scanErr
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListTeamsByGroup returns the group's teams in seeding order.
func (r *postgresPhase2GroupRepository) ListTeamsByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT t.id, t.name, t.pj, t.pg, t.pe, t.pp, t.gf, t.gc, t.gd, t.pts, t.crest_key
		FROM phase2_groups g
		JOIN teams t ON g.team_id = t.id
		WHERE g.group_name = $1
		ORDER BY g.position`
	rows, err := executor.QueryContext(ctx, query, groupName)
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

func (r *postgresPhase2GroupRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM phase2_groups`).Scan(&count)
	return count, err
}

func (r *postgresPhase2GroupRepository) handleGroupError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "phase2_groups_team_id_key" { // unique_violation
			return ErrGroupTeamConflict
		}
	}
	return err
}
