package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/history"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/refreshtokens"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager serves repositories from a single SQLite file.
type SQLiteRepositoryManager struct {
	db *sql.DB
}

func NewSQLiteRepositoryManager(db *sql.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{db: db}
}

func sqliteRepositories(db dbx.DBTX) *sqlRepositories {
	return &sqlRepositories{
		accounts:      accounts.NewSQLiteRepository(db),
		history:       history.NewSQLiteRepository(db),
		refreshTokens: refreshtokens.NewSQLiteRepository(db),
	}
}

func (m *SQLiteRepositoryManager) Accounts() accounts.Repository {
	return accounts.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) History() history.Repository {
	return history.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return refreshtokens.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, sqliteRepositories(tx))
	})
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.SQLite)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return gooseUpContext(ctx, m.db, migrations.SQLiteDir)
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
