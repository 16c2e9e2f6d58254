package cli

import (
	"context"
	"fmt"
	"sort"
)

func (a *App) Users(ctx context.Context) error {
	accounts, err := a.client.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		role := "user"
		if acc.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(a.out, "%-20s %-5s %s\n", acc.Username, role, acc.CreatedAt)
	}
	return nil
}

func (a *App) Promote(ctx context.Context, username string) error {
	if err := a.client.PromoteToAdmin(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now an admin\n", username)
	return nil
}

// All prints every user's history, users in name order.
func (a *App) All(ctx context.Context) error {
	all, err := a.client.ListAllHistory(ctx)
	if err != nil {
		return err
	}

	owners := make([]string, 0, len(all))
	for owner := range all {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		fmt.Fprintf(a.out, "== %s (%d)\n", owner, len(all[owner]))
		printEntries(a.out, all[owner])
	}
	return nil
}

func (a *App) Reset(ctx context.Context, username string) error {
	if err := a.client.ResetHistory(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "History of %s cleared\n", username)
	return nil
}
