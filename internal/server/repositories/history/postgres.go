package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/dbx"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

// PostgresRepository implements Repository over dbx.DBTX. Append issues two
// statements, so callers run it inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.HistoryEntry, retention int) error {
	query :=
		`INSERT INTO history (owner, created_at, source_lang, target_lang, input_text, output_text)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.Owner, e.Time, e.From, e.To, e.Input, e.Output).Scan(&e.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return common.ErrUnknownOwner
		}
		return fmt.Errorf("db error: %w", err)
	}

	if retention <= 0 {
		return nil
	}

	prune :=
		`DELETE FROM history
		 WHERE owner = $1 AND id NOT IN (
		     SELECT id FROM history WHERE owner = $1 ORDER BY id DESC LIMIT $2
		 )
		 `
	if _, err := r.db.ExecContext(ctx, prune, e.Owner, retention); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error) {
	query :=
		`SELECT id, owner, created_at, source_lang, target_lang, input_text, output_text
		 FROM history
		 WHERE owner = $1
		 ORDER BY id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.HistoryEntry{}
	for rows.Next() {
		e := &models.HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.Owner, &e.Time, &e.From, &e.To, &e.Input, &e.Output); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Clear(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) (map[string][]*models.HistoryEntry, error) {
	query :=
		`SELECT id, owner, created_at, source_lang, target_lang, input_text, output_text
		 FROM history
		 ORDER BY owner, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := map[string][]*models.HistoryEntry{}
	for rows.Next() {
		e := &models.HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.Owner, &e.Time, &e.From, &e.To, &e.Input, &e.Output); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[e.Owner] = append(result[e.Owner], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
