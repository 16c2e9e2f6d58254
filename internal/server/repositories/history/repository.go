// Package history declares the per-user translation history storage
// contract and its SQL implementations.
package history

import (
	"context"

	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// Repository stores history entries. Reads are always newest-first.
type Repository interface {
	// Append stores e and then keeps only the newest retention entries of
	// e.Owner (retention <= 0 keeps everything). An owner without an
	// account yields common.ErrUnknownOwner.
	Append(ctx context.Context, e *models.HistoryEntry, retention int) error

	// List returns up to limit entries of owner, newest first.
	List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error)

	// Clear deletes every entry of owner. Clearing an empty history is not an error.
	Clear(ctx context.Context, owner string) error

	// ListAll returns the history of every owner that has one.
	ListAll(ctx context.Context) (map[string][]*models.HistoryEntry, error)
}
