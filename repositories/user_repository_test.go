package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alcalius/padel-pro/models"
)

func newUserRepo(t *testing.T) (*postgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &postgresUserRepository{db: db}, mock
}

func TestUserCreate(t *testing.T) {
	repo, mock := newUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Ana", "ana@test.dev", "hash", "🎾").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	user := &models.User{Name: "Ana", Email: "ana@test.dev", PasswordHash: "hash", Avatar: "🎾"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, 3, user.ID)
}

func TestUserCreateEmailConflict(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{Name: "Ana", Email: "ana@test.dev"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("nobody@test.dev").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@test.dev")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserListByIDsEmptyShortCircuits(t *testing.T) {
	repo, _ := newUserRepo(t)

	users, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserListByIDs(t *testing.T) {
	repo, mock := newUserRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "avatar", "active_club_id", "profile_picture_key", "created_at"}).
		AddRow(1, "Ana", "ana@test.dev", "hash", "🎾", nil, nil, now).
		AddRow(2, "Bea", "bea@test.dev", "hash", "👩", 5, nil, now)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1)`)).
		WillReturnRows(rows)

	users, err := repo.ListByIDs(context.Background(), []int{1, 2})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	require.NotNil(t, users[1].ActiveClubID)
	assert.Equal(t, 5, *users[1].ActiveClubID)
}

func TestUserSetActiveClubNotFound(t *testing.T) {
	repo, mock := newUserRepo(t)
	clubID := 2

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET active_club_id`)).
		WithArgs(&clubID, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActiveClub(context.Background(), 99, &clubID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
