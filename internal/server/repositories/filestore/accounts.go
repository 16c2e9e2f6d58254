package filestore

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// AccountsRepository keeps accounts in accounts.json.
type AccountsRepository struct {
	ex executor
}

func (r *AccountsRepository) Create(ctx context.Context, a *models.Account) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.accounts[a.Username]; ok {
			return common.ErrDuplicateUser
		}
		t.st.accounts[a.Username] = accountRecord{
			Password:  a.PasswordHash,
			IsAdmin:   a.IsAdmin,
			CreatedAt: a.CreatedAt,
		}
		t.touch(AccountsFile)
		return nil
	})
}

func (r *AccountsRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a *models.Account
	err := r.ex.view(func(st *state) error {
		rec, ok := st.accounts[username]
		if !ok {
			return common.ErrorNotFound
		}
		a = toAccount(username, rec)
		return nil
	})
	return a, err
}

func (r *AccountsRepository) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	return r.ex.update(func(t *txn) error {
		rec, ok := t.st.accounts[username]
		if !ok {
			return common.ErrorNotFound
		}
		rec.IsAdmin = isAdmin
		t.st.accounts[username] = rec
		t.touch(AccountsFile)
		return nil
	})
}

// Delete removes the account together with its history and sessions.
func (r *AccountsRepository) Delete(ctx context.Context, username string) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.accounts[username]; !ok {
			return common.ErrorNotFound
		}
		delete(t.st.accounts, username)
		t.touch(AccountsFile)

		if _, ok := t.st.history[username]; ok {
			delete(t.st.history, username)
			t.touch(HistoryFile)
		}
		for hash, sess := range t.st.sessions {
			if sess.Username == username {
				delete(t.st.sessions, hash)
				t.touch(SessionsFile)
			}
		}
		return nil
	})
}

func (r *AccountsRepository) List(ctx context.Context) ([]*models.Account, error) {
	var result []*models.Account
	err := r.ex.view(func(st *state) error {
		for name, rec := range st.accounts {
			result = append(result, toAccount(name, rec))
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, err
}

func toAccount(username string, rec accountRecord) *models.Account {
	return &models.Account{
		Username:     username,
		PasswordHash: rec.Password,
		IsAdmin:      rec.IsAdmin,
		CreatedAt:    rec.CreatedAt,
	}
}
