package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Alcalius/padel-pro/models"
	"github.com/lib/pq"
)

var (
	ErrClubNotFound       = errors.New("club not found")
	ErrClubNameConflict   = errors.New("club name is already in use")
	ErrClubMemberConflict = errors.New("user is already a member of this club")
	ErrClubMemberNotFound = errors.New("user is not a member of this club")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	List(ctx context.Context) ([]models.Club, error)
	ListForUser(ctx context.Context, userID int) ([]models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	UpdateLogoKey(ctx context.Context, clubID int, logoKey *string) error
	AddMember(ctx context.Context, clubID, userID int) error
	RemoveMember(ctx context.Context, clubID, userID int) error
	IsMember(ctx context.Context, clubID, userID int) (bool, error)
	MemberIDs(ctx context.Context, clubID int) ([]int, error)
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubColumns = `id, name, description, created_by, password_hash, logo_key, created_at, updated_at`

func (r *postgresClubRepository) Create(ctx context.Context, c *models.Club) error {
	query := `
		INSERT INTO clubs (name, description, created_by, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Description, c.CreatedBy, c.PasswordHash).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return r.handleClubError(err)
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id)
	return scanClub(row)
}

func (r *postgresClubRepository) List(ctx context.Context) ([]models.Club, error) {
	return r.listClubs(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY created_at DESC`)
}

func (r *postgresClubRepository) ListForUser(ctx context.Context, userID int) ([]models.Club, error) {
	query := `
		SELECT ` + clubColumns + ` FROM clubs c
		JOIN club_members cm ON cm.club_id = c.id
		WHERE cm.user_id = $1
		ORDER BY c.created_at DESC`
	return r.listClubs(ctx, query, userID)
}

func (r *postgresClubRepository) listClubs(ctx context.Context, query string, args ...interface{}) ([]models.Club, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]models.Club, 0)
	for rows.Next() {
		c, scanErr := scanClub(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

func (r *postgresClubRepository) Update(ctx context.Context, c *models.Club) error {
	query := `
		UPDATE clubs SET name = $1, description = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.PasswordHash, c.ID)
	if err != nil {
		return r.handleClubError(err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdateLogoKey(ctx context.Context, clubID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clubs SET logo_key = $1, updated_at = NOW() WHERE id = $2`, logoKey, clubID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) AddMember(ctx context.Context, clubID, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO club_members (club_id, user_id) VALUES ($1, $2)`, clubID, userID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrClubMemberConflict
		case "23503":
			return ErrClubNotFound
		}
	}
	return err
}

func (r *postgresClubRepository) RemoveMember(ctx context.Context, clubID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubMemberNotFound)
}

func (r *postgresClubRepository) IsMember(ctx context.Context, clubID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2)`,
		clubID, userID).Scan(&exists)
	return exists, err
}

func (r *postgresClubRepository) MemberIDs(ctx context.Context, clubID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM club_members WHERE club_id = $1 ORDER BY joined_at`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanClub(row interface{ Scan(...interface{}) error }) (*models.Club, error) {
	c := &models.Club{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.PasswordHash,
		&c.LogoKey, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresClubRepository) handleClubError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "clubs_name_key" {
		return ErrClubNameConflict
	}
	return err
}
