package filestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

// HistoryRepository keeps per-user history in history.json, oldest first.
// Entries have no ID in this backend.
type HistoryRepository struct {
	ex executor
}

func (r *HistoryRepository) Append(ctx context.Context, e *models.HistoryEntry, retention int) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.accounts[e.Owner]; !ok {
			return common.ErrUnknownOwner
		}

		entries := append(t.st.history[e.Owner], entryRecord{
			Time:   e.Timestamp(),
			From:   e.From,
			To:     e.To,
			Input:  e.Input,
			Output: e.Output,
		})
		if retention > 0 && len(entries) > retention {
			entries = append([]entryRecord(nil), entries[len(entries)-retention:]...)
		}
		t.st.history[e.Owner] = entries
		t.touch(HistoryFile)
		return nil
	})
}

func (r *HistoryRepository) List(ctx context.Context, owner string, limit int) ([]*models.HistoryEntry, error) {
	result := []*models.HistoryEntry{}
	err := r.ex.view(func(st *state) error {
		entries := st.history[owner]
		for i := len(entries) - 1; i >= 0 && len(result) < limit; i-- {
			e, err := toEntry(owner, entries[i])
			if err != nil {
				return err
			}
			result = append(result, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, owner string) error {
	return r.ex.update(func(t *txn) error {
		if _, ok := t.st.history[owner]; !ok {
			return nil
		}
		delete(t.st.history, owner)
		t.touch(HistoryFile)
		return nil
	})
}

func (r *HistoryRepository) ListAll(ctx context.Context) (map[string][]*models.HistoryEntry, error) {
	result := map[string][]*models.HistoryEntry{}
	err := r.ex.view(func(st *state) error {
		for owner, entries := range st.history {
			if len(entries) == 0 {
				continue
			}
			list := make([]*models.HistoryEntry, 0, len(entries))
			for i := len(entries) - 1; i >= 0; i-- {
				e, err := toEntry(owner, entries[i])
				if err != nil {
					return err
				}
				list = append(list, e)
			}
			result[owner] = list
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toEntry(owner string, rec entryRecord) (*models.HistoryEntry, error) {
	ts, err := time.ParseInLocation(common.TimeLayout, rec.Time, time.Local)
	if err != nil {
		return nil, errors.Join(common.ErrStorage, fmt.Errorf("bad history time %q: %w", rec.Time, err))
	}
	return &models.HistoryEntry{
		Owner:  owner,
		Time:   ts,
		From:   rec.From,
		To:     rec.To,
		Input:  rec.Input,
		Output: rec.Output,
	}, nil
}
