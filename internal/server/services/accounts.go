package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/cryptox"
	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/auth"
	"github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
)

// Session is what a successful login or refresh hands back to the client.
type Session struct {
	Username     string
	IsAdmin      bool
	AccessToken  string
	RefreshToken string
}

// AccountService implements signup, authentication, sessions and the
// administrative account operations.
type AccountService struct {
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	caseInsensitive              bool
	rootAdmin                    string
	now                          func() time.Time
}

func NewAccountService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	s := &AccountService{
		repomanager:                  m,
		logger:                       logger.With("module", "accounts"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		caseInsensitive:              cfg.CaseInsensitiveUsernames,
		now:                          time.Now,
	}
	s.rootAdmin, _ = s.Normalize(cfg.RootAdmin)
	return s
}

// Normalize applies the configured username rules.
func (s *AccountService) Normalize(username string) (string, error) {
	return normalizeUsername(username, s.caseInsensitive)
}

// dummyHash is verified for unknown users so that a failed lookup costs the
// same as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := cryptox.HashPassword([]byte("transkeeper/dummy"))
	return h
})

func (s *AccountService) CreateAccount(ctx context.Context, username, password string) (*models.Account, error) {
	username, err := s.Normalize(username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	a := &models.Account{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().Truncate(time.Second),
	}
	if err := s.repomanager.Accounts().Create(ctx, a); err != nil {
		return nil, fmt.Errorf("error creating account: %w", storageError(err))
	}

	s.logger.Info(ctx, "account created", "username", username)
	return a, nil
}

// Authenticate returns common.ErrInvalidCredentials for unknown users and
// wrong passwords alike.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	username, err := s.Normalize(username)
	if err != nil {
		_, _ = cryptox.VerifyPassword(dummyHash(), []byte(password))
		return nil, common.ErrInvalidCredentials
	}

	a, err := s.repomanager.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = cryptox.VerifyPassword(dummyHash(), []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, storageError(err)
	}

	ok, err := cryptox.VerifyPassword(a.PasswordHash, []byte(password))
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unreadable", "username", username, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return a, nil
}

// Login authenticates and opens a session.
func (s *AccountService) Login(ctx context.Context, username, password string) (*Session, error) {
	a, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess, err := s.newSession(ctx, s.repomanager, a)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "login", "username", a.Username)
	return sess, nil
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a new session. Expired tokens yield common.ErrRefreshTokenExpired.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	hash := cryptox.HashToken(refreshToken)

	var sess *Session
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		token, err := r.RefreshTokens().Find(ctx, hash)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", storageError(err))
		}

		if err := r.RefreshTokens().Delete(ctx, hash); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", storageError(err))
		}
		if token.Expires.Before(s.now()) {
			return errExpiredRotation
		}

		a, err := r.Accounts().GetByUsername(ctx, token.Username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return storageError(err)
		}

		sess, err = s.newSession(ctx, r, a)
		return err
	})

	if errors.Is(err, errExpiredRotation) {
		// drop the stale token outside the rolled back transaction
		if derr := s.repomanager.RefreshTokens().Delete(ctx, hash); derr != nil {
			s.logger.Warn(ctx, "failed to delete expired refresh token", "error", derr)
		}
		return nil, common.ErrRefreshTokenExpired
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

var errExpiredRotation = errors.New("refresh token expired during rotation")

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens().Delete(ctx, cryptox.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", storageError(err))
	}
	return nil
}

// Account returns the current state of username.
func (s *AccountService) Account(ctx context.Context, username string) (*models.Account, error) {
	a, err := s.repomanager.Accounts().GetByUsername(ctx, username)
	if err != nil {
		return nil, storageError(err)
	}
	return a, nil
}

// PromoteToAdmin grants admin rights to username. Only admins may do it.
func (s *AccountService) PromoteToAdmin(ctx context.Context, actor, username string) error {
	username, err := s.Normalize(username)
	if err != nil {
		return err
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := requireAdmin(ctx, r, actor); err != nil {
			return err
		}
		return storageError(r.Accounts().SetAdmin(ctx, username, true))
	})
	if err != nil {
		return fmt.Errorf("error promoting %q: %w", username, err)
	}

	s.logger.Info(ctx, "account promoted", "username", username, "actor", actor)
	return nil
}

// DeleteAccount removes username together with its history and sessions.
// Users may delete themselves, admins may delete anyone except the root admin.
func (s *AccountService) DeleteAccount(ctx context.Context, actor, username string) error {
	username, err := s.Normalize(username)
	if err != nil {
		return err
	}
	if username == s.rootAdmin {
		return common.ErrProtected
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if actor != username {
			if err := requireAdmin(ctx, r, actor); err != nil {
				return err
			}
		}
		if err := r.History().Clear(ctx, username); err != nil {
			return storageError(err)
		}
		if err := r.RefreshTokens().DeleteByUser(ctx, username); err != nil {
			return storageError(err)
		}
		return storageError(r.Accounts().Delete(ctx, username))
	})
	if err != nil {
		return fmt.Errorf("error deleting %q: %w", username, err)
	}

	s.logger.Info(ctx, "account deleted", "username", username, "actor", actor)
	return nil
}

// ListAccounts returns every account. Only admins may do it.
func (s *AccountService) ListAccounts(ctx context.Context, actor string) ([]*models.Account, error) {
	if err := requireAdmin(ctx, s.repomanager, actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Accounts().List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return list, nil
}

// EnsureRootAdmin creates the root admin with password when it does not
// exist yet, and makes sure an existing one is an admin. An empty password
// skips creation.
func (s *AccountService) EnsureRootAdmin(ctx context.Context, password string) error {
	if s.rootAdmin == "" {
		return nil
	}

	a, err := s.repomanager.Accounts().GetByUsername(ctx, s.rootAdmin)
	switch {
	case err == nil:
		if a.IsAdmin {
			return nil
		}
		return storageError(s.repomanager.Accounts().SetAdmin(ctx, s.rootAdmin, true))
	case !errors.Is(err, common.ErrorNotFound):
		return storageError(err)
	case password == "":
		s.logger.Warn(ctx, "root admin does not exist and no bootstrap password is configured", "username", s.rootAdmin)
		return nil
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return err
	}
	err = s.repomanager.Accounts().Create(ctx, &models.Account{
		Username:     s.rootAdmin,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    s.now().Truncate(time.Second),
	})
	if err != nil && !errors.Is(err, common.ErrDuplicateUser) {
		return storageError(err)
	}

	s.logger.Info(ctx, "root admin created", "username", s.rootAdmin)
	return nil
}

func (s *AccountService) newSession(ctx context.Context, r repomanager.Repositories, a *models.Account) (*Session, error) {
	access, err := auth.GenerateToken(a.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := r.RefreshTokens().Create(ctx, a.Username, cryptox.HashToken(refresh), expires); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", storageError(err))
	}

	return &Session{
		Username:     a.Username,
		IsAdmin:      a.IsAdmin,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
