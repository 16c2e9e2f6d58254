// Package services contains the server-side business logic: accounts and
// sessions, translation history, history export and the translate,
// transcribe and speak actions built on the external collaborators.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
)

// passthrough lists the errors a repository may return that already carry
// a domain meaning.
var passthrough = []error{
	common.ErrorNotFound,
	common.ErrDuplicateUser,
	common.ErrUnknownOwner,
	common.ErrInvalidInput,
	common.ErrInvalidCredentials,
	common.ErrProtected,
	common.ErrForbidden,
	common.ErrInvalidToken,
	common.ErrRefreshTokenExpired,
	common.ErrStorage,
}

// storageError marks err as a persistence failure unless it is already a
// domain error.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range passthrough {
		if errors.Is(err, target) {
			return err
		}
	}
	return errors.Join(common.ErrStorage, err)
}

// normalizeUsername trims surrounding whitespace and optionally folds case.
func normalizeUsername(name string, foldCase bool) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty username", common.ErrInvalidInput)
	}
	if foldCase {
		name = strings.ToLower(name)
	}
	return name, nil
}

// requireAdmin returns common.ErrForbidden unless actor is an existing admin.
func requireAdmin(ctx context.Context, r repomanager.Repositories, actor string) error {
	a, err := r.Accounts().GetByUsername(ctx, actor)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrForbidden
		}
		return storageError(err)
	}
	if !a.IsAdmin {
		return common.ErrForbidden
	}
	return nil
}
