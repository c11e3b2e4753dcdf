package kitchen

import (
	"context"
	"fmt"

	"github.com/Veraticus/pantrychef/internal/store"
)

// OpenStores hydrates every store from backend.
func OpenStores(ctx context.Context, backend store.Backend, policy store.AccountPolicy, opts store.Options) (Stores, error) {
	pantry, err := store.OpenPantry(ctx, backend, opts)
	if err != nil {
		return Stores{}, fmt.Errorf("failed to open pantry: %w", err)
	}

	list, err := store.OpenShoppingList(ctx, backend, opts)
	if err != nil {
		return Stores{}, fmt.Errorf("failed to open shopping list: %w", err)
	}

	account, err := store.OpenAccount(ctx, backend, policy, opts)
	if err != nil {
		return Stores{}, fmt.Errorf("failed to open account: %w", err)
	}

	recipes, err := store.OpenRecipeBook(ctx, backend, opts)
	if err != nil {
		return Stores{}, fmt.Errorf("failed to open recipe book: %w", err)
	}

	return Stores{
		Pantry:  pantry,
		List:    list,
		Account: account,
		Recipes: recipes,
	}, nil
}
