// Package accounts declares the account storage contract and its SQL
// implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// Repository stores accounts keyed by username.
type Repository interface {
	// Create inserts a new account. It returns common.ErrDuplicateUser when
	// the username is taken.
	Create(ctx context.Context, a *models.Account) error

	// GetByUsername returns common.ErrorNotFound when there is no such account.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// SetAdmin updates the admin flag. Missing accounts yield common.ErrorNotFound.
	SetAdmin(ctx context.Context, username string, isAdmin bool) error

	// Delete removes the account row. Missing accounts yield common.ErrorNotFound.
	Delete(ctx context.Context, username string) error

	// List returns every account ordered by username.
	List(ctx context.Context) ([]*models.Account, error)
}
