package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/history"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	cfg.TextLogPath = ""
	return cfg
}

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	l, err := logging.New("error", "text", io.Discard)
	require.NoError(t, err)
	return l
}

func newManager(t *testing.T, dir string) repomanager.RepositoryManager {
	t.Helper()
	m, err := repomanager.NewFileRepositoryManager(dir)
	require.NoError(t, err)
	return m
}

func newServices(t *testing.T, cfg *config.Config) (*AccountService, *HistoryService, repomanager.RepositoryManager) {
	t.Helper()
	m := newManager(t, t.TempDir())
	return NewAccountService(m, cfg, testLogger(t)), NewHistoryService(m, cfg, testLogger(t)), m
}

func mustCreate(t *testing.T, s *AccountService, username, password string) {
	t.Helper()
	_, err := s.CreateAccount(context.Background(), username, password)
	require.NoError(t, err)
}

func entryAt(t *testing.T, owner, input, output string, at time.Time) *models.HistoryEntry {
	t.Helper()
	e, err := models.NewHistoryEntry(owner, "en", "fr", input, output, at)
	require.NoError(t, err)
	return e
}

// brokenManager fails every storage call of the repositories it overrides.
type brokenManager struct {
	repomanager.RepositoryManager
}

func (m brokenManager) Accounts() accounts.Repository { return brokenAccounts{} }
func (m brokenManager) History() history.Repository   { return brokenHistory{} }

func (m brokenManager) WithTx(ctx context.Context, fn func(ctx context.Context, r repomanager.Repositories) error) error {
	return fn(ctx, m)
}

type brokenAccounts struct{ accounts.Repository }

func (brokenAccounts) Create(context.Context, *models.Account) error { return errBoom }
func (brokenAccounts) GetByUsername(context.Context, string) (*models.Account, error) {
	return nil, errBoom
}

type brokenHistory struct{ history.Repository }

func (brokenHistory) Append(context.Context, *models.HistoryEntry, int) error { return errBoom }
func (brokenHistory) List(context.Context, string, int) ([]*models.HistoryEntry, error) {
	return nil, errBoom
}
