package repomanager

import (
	"context"

	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/filestore"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/history"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/refreshtokens"
)

// FileRepositoryManager serves repositories from the JSON files in a data directory.
type FileRepositoryManager struct {
	store *filestore.Store
}

// NewFileRepositoryManager opens (or initialises) the JSON store in dir.
func NewFileRepositoryManager(dir string) (*FileRepositoryManager, error) {
	store, err := filestore.Open(dir)
	if err != nil {
		return nil, err
	}
	return &FileRepositoryManager{store: store}, nil
}

type fileRepositories struct {
	r *filestore.Repositories
}

func (f fileRepositories) Accounts() accounts.Repository           { return f.r.Accounts }
func (f fileRepositories) History() history.Repository             { return f.r.History }
func (f fileRepositories) RefreshTokens() refreshtokens.Repository { return f.r.RefreshTokens }

func (m *FileRepositoryManager) Accounts() accounts.Repository {
	return m.store.Repositories().Accounts
}

func (m *FileRepositoryManager) History() history.Repository {
	return m.store.Repositories().History
}

func (m *FileRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.store.Repositories().RefreshTokens
}

// WithTx holds the store lock while fn runs and persists only on success.
func (m *FileRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return m.store.Transaction(ctx, func(ctx context.Context, r *filestore.Repositories) error {
		return fn(ctx, fileRepositories{r: r})
	})
}

func (m *FileRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *FileRepositoryManager) Close() error { return nil }
