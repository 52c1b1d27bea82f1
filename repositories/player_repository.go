package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/torneoveteranos/tournament-system/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]models.Player, error)
	Rename(ctx context.Context, exec SQLExecutor, id int, name string) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	IncrementStats(ctx context.Context, exec SQLExecutor, id, goals, yellowCards, redCards, blueCards int) error
	ListScorers(ctx context.Context, exec SQLExecutor) ([]models.ScorerRow, error)
	ListCarded(ctx context.Context, exec SQLExecutor) ([]models.CardRow, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = "id, name, team_id, goals, yellow_cards, red_cards, blue_cards"

func scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(&p.ID, &p.Name, &p.TeamID, &p.Goals, &p.YellowCards, &p.RedCards, &p.BlueCards)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (name, team_id)
		VALUES ($1, $2)
		RETURNING id, goals, yellow_cards, red_cards, blue_cards`
	err := executor.QueryRowContext(ctx, query, player.Name, player.TeamID).
		Scan(&player.ID, &player.Goals, &player.YellowCards, &player.RedCards, &player.BlueCards)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]models.Player, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE team_id = $1 ORDER BY name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Rename(ctx context.Context, exec SQLExecutor, id int, name string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE players SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// IncrementStats adds the given deltas to the player's cumulative counters.
func (r *postgresPlayerRepository) IncrementStats(ctx context.Context, exec SQLExecutor, id, goals, yellowCards, redCards, blueCards int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET goals = goals + $1,
		    yellow_cards = yellow_cards + $2,
		    red_cards = red_cards + $3,
		    blue_cards = blue_cards + $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query, goals, yellowCards, redCards, blueCards, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ListScorers(ctx context.Context, exec SQLExecutor) ([]models.ScorerRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT p.id, p.name, t.name AS team, p.goals
		FROM players p
		JOIN teams t ON p.team_id = t.id
		WHERE p.goals > 0
		ORDER BY p.goals DESC, p.name ASC`
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scorers := make([]models.ScorerRow, 0)
	for rows.Next() {
		var row models.ScorerRow
		if scanErr := rows.Scan(&row.PlayerID, &row.Name, &row.Team, &row.Goals); scanErr != nil {
			return nil, scanErr
		}
		scorers = append(scorers, row)
	}
	return scorers, rows.Err()
}

func (r *postgresPlayerRepository) ListCarded(ctx context.Context, exec SQLExecutor) ([]models.CardRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT p.id, p.name, t.name AS team, p.yellow_cards, p.red_cards, p.blue_cards
		FROM players p
		JOIN teams t ON p.team_id = t.id
		WHERE p.yellow_cards > 0 OR p.red_cards > 0 OR p.blue_cards > 0
		ORDER BY (p.yellow_cards + p.red_cards + p.blue_cards) DESC, p.name ASC`
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	carded := make([]models.CardRow, 0)
	for rows.Next() {
		var row models.CardRow
		if scanErr := rows.Scan(&row.PlayerID, &row.Name, &row.Team, &row.YellowCards, &row.RedCards, &row.BlueCards); scanErr != nil {
			return nil, scanErr
		}
		carded = append(carded, row)
	}
	return carded, rows.Err()
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" { // foreign_key_violation
			return ErrPlayerTeamInvalid
		}
	}
	return err
}
