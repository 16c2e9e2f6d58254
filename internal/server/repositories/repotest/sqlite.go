// Package repotest opens throwaway databases for repository tests.
package repotest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/server/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// NewSQLite returns an in-memory SQLite database with the schema applied.
// The database is closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := dbx.Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("goose dialect: %v", err)
	}
	if err := goose.UpContext(ctx, db, migrations.SQLiteDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
