package history

import (
	"context"
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
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.HistoryEntry, retention int) error {
	query := `insert into history (owner, created_at, source_lang, target_lang, input_text, output_text)
			values (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, e.Owner, e.Time.Unix(), e.From, e.To, e.Input, e.Output)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return common.ErrUnknownOwner
		}
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get entry id: %w", err)
	}

	if retention <= 0 {
		return nil
	}

	prune := `delete from history where owner = ? and id not in (
			select id from history where owner = ? order by id desc limit ?)`
	if _, err := r.db.ExecContext(ctx, prune, e.Owner, e.Owner, retention); err != nil {
		return fmt.Errorf("failed to apply retention: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error) {
	query := `select id, owner, created_at, source_lang, target_lang, input_text, output_text
			from history where owner = ? order by id desc limit ?`

	result := []*models.HistoryEntry{}
	err := r.query(ctx, func(e *models.HistoryEntry) { result = append(result, e) }, query, owner, limit)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, `delete from history where owner = ?`, owner); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) (map[string][]*models.HistoryEntry, error) {
	query := `select id, owner, created_at, source_lang, target_lang, input_text, output_text
			from history order by owner, id desc`

	result := map[string][]*models.HistoryEntry{}
	err := r.query(ctx, func(e *models.HistoryEntry) { result[e.Owner] = append(result[e.Owner], e) }, query)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) query(ctx context.Context, collect func(*models.HistoryEntry), query string, args ...any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := &models.HistoryEntry{}
		var created int64
		if err := rows.Scan(&e.ID, &e.Owner, &created, &e.From, &e.To, &e.Input, &e.Output); err != nil {
			return fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Time = time.Unix(created, 0)
		collect(e)
	}
	return rows.Err()
}
