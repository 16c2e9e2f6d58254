package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// SQLiteRepository stores refresh tokens in SQLite with unix-second expiry.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, username string, tokenHash string, expires time.Time) error {
	query := `insert into refresh_tokens (token_hash, username, expires_at, created_at) values (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, tokenHash, username, expires.Unix(), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	query := `select username, expires_at, created_at from refresh_tokens where token_hash = ?`

	rt := &models.RefreshToken{TokenHash: tokenHash}
	var expires, created int64
	if err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&rt.Username, &expires, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select refresh token: %w", err)
	}
	rt.Expires = time.Unix(expires, 0)
	rt.CreatedAt = time.Unix(created, 0)
	return rt, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `delete from refresh_tokens where token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, `delete from refresh_tokens where username = ?`, username); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}
