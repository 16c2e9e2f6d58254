// Package refreshtokens declares the server-side contract for storing
// refresh tokens. Only token hashes are persisted.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a token hash for username that is valid until expires.
	Create(ctx context.Context, username string, tokenHash string, expires time.Time) error

	// Find looks up a token by its hash. Implementations return
	// common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Delete removes a token by its hash. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteByUser revokes every session of username.
	DeleteByUser(ctx context.Context, username string) error
}
