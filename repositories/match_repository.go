package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alcalius/padel-pro/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchInvalidTournament = errors.New("invalid tournament reference")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, scoreTeam1, scoreTeam2 int, status models.MatchStatus) error
	Delete(ctx context.Context, id int) error
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

const matchColumns = `id, tournament_id, team1, team2, score_team1, score_team2, status, created_at`

// Teams are stored as JSONB arrays of player refs, keeping the same
// wire format the API uses (user ids and "guest-N" strings).
func marshalTeam(team []models.PlayerRef) ([]byte, error) {
	data, err := json.Marshal(team)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team: %w", err)
	}
	return data, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)

	team1, err := marshalTeam(m.Team1)
	if err != nil {
		return err
	}
	team2, err := marshalTeam(m.Team2)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches (tournament_id, team1, team2, score_team1, score_team2, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err = executor.QueryRowContext(ctx, query,
		m.TournamentID, team1, team2, m.ScoreTeam1, m.ScoreTeam2, m.Status, m.CreatedAt,
	).Scan(&m.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrMatchInvalidTournament
	}
	return err
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE tournament_id = $1 ORDER BY created_at, id`,
		tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, scoreTeam1, scoreTeam2 int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET score_team1 = $1, score_team2 = $2, status = $3 WHERE id = $4`,
		scoreTeam1, scoreTeam2, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	var team1, team2 []byte
	err := row.Scan(&m.ID, &m.TournamentID, &team1, &team2,
		&m.ScoreTeam1, &m.ScoreTeam2, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(team1, &m.Team1); err != nil {
		return nil, fmt.Errorf("failed to decode team1 for match %d: %w", m.ID, err)
	}
	if err := json.Unmarshal(team2, &m.Team2); err != nil {
		return nil, fmt.Errorf("failed to decode team2 for match %d: %w", m.ID, err)
	}
	return m, nil
}
