package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/dmitrijs2005/transkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
)

// HistoryService stores and reads the per-user translation history.
type HistoryService struct {
	repomanager     repomanager.RepositoryManager
	logger          logging.Logger
	retention       int
	truncate        int
	pageSize        int
	caseInsensitive bool
}

func NewHistoryService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *HistoryService {
	pageSize := cfg.HistoryPageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &HistoryService{
		repomanager:     m,
		logger:          logger.With("module", "history"),
		retention:       cfg.HistoryRetention,
		truncate:        cfg.HistoryTruncate,
		pageSize:        pageSize,
		caseInsensitive: cfg.CaseInsensitiveUsernames,
	}
}

// Append truncates e to the configured length and stores it, keeping only
// the newest entries when a retention cap is configured. Insert and prune
// happen in one transaction.
func (s *HistoryService) Append(ctx context.Context, e *models.HistoryEntry) error {
	e.Truncate(s.truncate)

	start := time.Now()
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		return r.History().Append(ctx, e, s.retention)
	})
	metrics.HistoryWriteDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("error appending history: %w", storageError(err))
	}
	return nil
}

// List returns up to limit entries of owner, newest first. limit <= 0 uses
// the configured page size.
func (s *HistoryService) List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	list, err := s.repomanager.History().List(ctx, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", storageError(err))
	}
	return list, nil
}

// Clear removes the whole history of owner.
func (s *HistoryService) Clear(ctx context.Context, owner string) error {
	if err := s.repomanager.History().Clear(ctx, owner); err != nil {
		return fmt.Errorf("error clearing history: %w", storageError(err))
	}
	s.logger.Info(ctx, "history cleared", "owner", owner)
	return nil
}

// ListAll returns every user's history. Only admins may do it.
func (s *HistoryService) ListAll(ctx context.Context, actor string) (map[string][]*models.HistoryEntry, error) {
	if err := requireAdmin(ctx, s.repomanager, actor); err != nil {
		return nil, err
	}
	all, err := s.repomanager.History().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", storageError(err))
	}
	return all, nil
}

// Reset clears the history of owner on behalf of an admin. owner is typed
// by the admin, so it goes through the same normalisation as account names.
func (s *HistoryService) Reset(ctx context.Context, actor, owner string) error {
	owner, err := normalizeUsername(owner, s.caseInsensitive)
	if err != nil {
		return err
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := requireAdmin(ctx, r, actor); err != nil {
			return err
		}
		if _, err := r.Accounts().GetByUsername(ctx, owner); err != nil {
			return storageError(err)
		}
		return storageError(r.History().Clear(ctx, owner))
	})
	if err != nil {
		return fmt.Errorf("error resetting history of %q: %w", owner, err)
	}

	s.logger.Info(ctx, "history reset", "owner", owner, "actor", actor)
	return nil
}
