package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// RefreshTokensRepository keeps refresh token hashes in sessions.json.
type RefreshTokensRepository struct {
	ex executor
}

func (r *RefreshTokensRepository) Create(ctx context.Context, username string, tokenHash string, expires time.Time) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.accounts[username]; !ok {
			return fmt.Errorf("session for %q: %w", username, common.ErrorNotFound)
		}
		t.st.sessions[tokenHash] = sessionRecord{
			Username:  username,
			Expires:   expires,
			CreatedAt: time.Now(),
		}
		t.touch(SessionsFile)
		return nil
	})
}

func (r *RefreshTokensRepository) Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var rt *models.RefreshToken
	err := r.ex.view(func(st *state) error {
		sess, ok := st.sessions[tokenHash]
		if !ok {
			return common.ErrorNotFound
		}
		rt = &models.RefreshToken{
			Username:  sess.Username,
			TokenHash: tokenHash,
			Expires:   sess.Expires,
			CreatedAt: sess.CreatedAt,
		}
		return nil
	})
	return rt, err
}

func (r *RefreshTokensRepository) Delete(ctx context.Context, tokenHash string) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.sessions[tokenHash]; ok {
			delete(t.st.sessions, tokenHash)
			t.touch(SessionsFile)
		}
		return nil
	})
}

func (r *RefreshTokensRepository) DeleteByUser(ctx context.Context, username string) error {
	return r.ex.update(func(t *txn) error {
		for hash, sess := range t.st.sessions {
			if sess.Username == username {
				delete(t.st.sessions, hash)
				t.touch(SessionsFile)
			}
		}
		return nil
	})
}
