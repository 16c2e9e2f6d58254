// Package repomanager selects a storage backend and hands out repositories
// bound either to the backend itself or to a transaction.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/filex"
	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/history"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/refreshtokens"
	"github.com/pressly/goose/v3"
)

// Storage backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// SQLiteFile is the database file name used when no DSN is configured.
const SQLiteFile = "transkeeper.db"

type Repositories interface {
	Accounts() accounts.Repository
	History() history.Repository
	RefreshTokens() refreshtokens.Repository
}

type RepositoryManager interface {
	Repositories

	// RunMigrations brings the schema up to date. A no-op for the JSON backend.
	RunMigrations(ctx context.Context) error

	// WithTx runs fn with repositories that share one atomic unit of work.
	// Nothing fn did is visible to others unless it returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error

	Close() error
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New opens the configured backend and runs its migrations. For sqlite an
// empty dsn means a database file inside dataDir. Migration progress goes
// to logger.
func New(ctx context.Context, backend, dsn, dataDir string, logger logging.Logger) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch backend {
	case BackendPostgres:
		m, err = openPostgres(ctx, dsn)
	case BackendSQLite:
		if dsn == "" {
			abs, derr := filex.EnsureDir(dataDir)
			if derr != nil {
				return nil, derr
			}
			dsn = filepath.Join(abs, SQLiteFile)
		}
		m, err = openSQLite(ctx, dsn)
	case BackendJSON, "":
		m, err = NewFileRepositoryManager(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, err
	}

	goose.SetLogger(logging.NewPrintfLogger(logger.With("module", "migrations")))

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

func openPostgres(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := dbx.Open(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgresRepositoryManager(db), nil
}

func openSQLite(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := dbx.Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return NewSQLiteRepositoryManager(db), nil
}

type sqlRepositories struct {
	accounts      accounts.Repository
	history       history.Repository
	refreshTokens refreshtokens.Repository
}

func (r *sqlRepositories) Accounts() accounts.Repository           { return r.accounts }
func (r *sqlRepositories) History() history.Repository             { return r.history }
func (r *sqlRepositories) RefreshTokens() refreshtokens.Repository { return r.refreshTokens }
