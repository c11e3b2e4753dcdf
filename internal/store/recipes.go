package store

import (
	"context"
	"errors"
	"slices"

	"github.com/Veraticus/pantrychef/internal/model"
)

// MaxRecipeBatches is how many generated batches the recipe book keeps.
const MaxRecipeBatches = 10

// RecipeState is the persisted recipe book document, newest batch last.
type RecipeState struct {
	Batches [][]model.Recipe `json:"batches"`
}

// RecipeBook keeps the most recent generated recipe batches so recipes can be
// revisited after the command that generated them has exited.
type RecipeBook struct {
	store *Store[RecipeState]
}

// OpenRecipeBook hydrates the recipe book.
func OpenRecipeBook(ctx context.Context, backend Backend, opts Options) (*RecipeBook, error) {
	s, err := Open(ctx, backend, Config[RecipeState]{
		Name:    RecipeStoreName,
		Default: func() RecipeState { return RecipeState{Batches: [][]model.Recipe{}} },
		Sanitize: func(state RecipeState) RecipeState {
			state.Batches = slices.DeleteFunc(state.Batches, func(b []model.Recipe) bool { return len(b) == 0 })
			return state
		},
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &RecipeBook{store: s}, nil
}

// SaveBatch records a generated batch, evicting the oldest beyond MaxRecipeBatches.
func (b *RecipeBook) SaveBatch(ctx context.Context, recipes []model.Recipe) error {
	if len(recipes) == 0 {
		return errors.New("cannot save an empty recipe batch")
	}
	return b.store.Update(ctx, func(s RecipeState) (RecipeState, bool) {
		batches := append(slices.Clone(s.Batches), slices.Clone(recipes))
		if len(batches) > MaxRecipeBatches {
			batches = batches[len(batches)-MaxRecipeBatches:]
		}
		s.Batches = batches
		return s, true
	})
}

// Latest returns the most recent batch, or nil when nothing was generated yet.
func (b *RecipeBook) Latest() []model.Recipe {
	batches := b.store.State().Batches
	if len(batches) == 0 {
		return nil
	}
	return slices.Clone(batches[len(batches)-1])
}

// Batches returns every kept batch, newest first.
func (b *RecipeBook) Batches() [][]model.Recipe {
	batches := slices.Clone(b.store.State().Batches)
	slices.Reverse(batches)
	return batches
}

// Find looks a recipe up by id across every kept batch.
func (b *RecipeBook) Find(id string) (model.Recipe, bool) {
	batches := b.store.State().Batches
	for i := len(batches) - 1; i >= 0; i-- {
		for _, r := range batches[i] {
			if r.ID == id {
				return r, true
			}
		}
	}
	return model.Recipe{}, false
}
