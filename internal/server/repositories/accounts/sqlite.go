package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository for the embedded SQLite backend.
// Timestamps are stored as unix seconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) error {
	query := `insert into accounts (username, password_hash, is_admin, created_at) values (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, a.Username, a.PasswordHash, a.IsAdmin, a.CreatedAt.Unix())
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return common.ErrDuplicateUser
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `select username, password_hash, is_admin, created_at from accounts where username = ?`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	res, err := r.db.ExecContext(ctx, `update accounts set is_admin = ? where username = ?`, isAdmin, username)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `delete from accounts where username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `select username, password_hash, is_admin, created_at from accounts order by username`)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	a := &models.Account{}
	var created int64
	if err := s.Scan(&a.Username, &a.PasswordHash, &a.IsAdmin, &created); err != nil {
		return nil, err
	}
	a.CreatedAt = time.Unix(created, 0)
	return a, nil
}
