package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var selectCols = []string{"username", "password_hash", "is_admin", "created_at"}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accounts\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)`).
		WithArgs("alice", "hash", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Account{Username: "alice", PasswordHash: "hash", CreatedAt: now})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Account{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrDuplicateUser)
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+accounts`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Account{Username: "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
	assert.NotErrorIs(t, err, common.ErrDuplicateUser)
}

func TestPostgresGetByUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT\s+username,\s*password_hash,\s*is_admin,\s*created_at\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(selectCols).AddRow("alice", "hash", true, created))

	a, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.Account{Username: "alice", PasswordHash: "hash", IsAdmin: true, CreatedAt: created}, a)
}

func TestPostgresGetByUsername_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+accounts`).WithArgs("bob").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresSetAdmin(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE\s+accounts\s+SET\s+is_admin\s*=\s*\$2\s+WHERE\s+username\s*=\s*\$1$`).
		WithArgs("alice", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE\s+accounts`).
		WithArgs("ghost", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetAdmin(context.Background(), "alice", true))
	assert.ErrorIs(t, repo.SetAdmin(context.Background(), "ghost", true), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1$`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE\s+FROM\s+accounts`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "alice"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "alice"), common.ErrorNotFound)
}

func TestPostgresList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+accounts\s+ORDER\s+BY\s+username`).
		WillReturnRows(sqlmock.NewRows(selectCols).
			AddRow("admin", "h1", true, now).
			AddRow("alice", "h2", false, now))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "admin", list[0].Username)
	assert.True(t, list[0].IsAdmin)
	assert.Equal(t, "alice", list[1].Username)
}

func TestPostgresList_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))

	_, err := repo.List(context.Background())
	assert.Error(t, err)
}
