package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/go-playground/validator/v10"
)

// PantryState is the persisted pantry document.
type PantryState struct {
	Items []model.PantryItem `json:"items"`
}

// Pantry is the inventory of ingredients on hand.
type Pantry struct {
	store    *Store[PantryState]
	validate *validator.Validate
	opts     Options
}

// OpenPantry hydrates the pantry store.
func OpenPantry(ctx context.Context, backend Backend, opts Options) (*Pantry, error) {
	opts = opts.withDefaults()

	s, err := Open(ctx, backend, Config[PantryState]{
		Name:     PantryStoreName,
		Default:  func() PantryState { return PantryState{Items: []model.PantryItem{}} },
		Sanitize: sanitizePantry,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Pantry{store: s, validate: validator.New(), opts: opts}, nil
}

// sanitizePantry drops entries that could never have been created by AddItems.
func sanitizePantry(state PantryState) PantryState {
	seen := make(map[string]bool, len(state.Items))
	items := make([]model.PantryItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		if !item.Status.Valid() {
			item.Status = model.StatusFresh
		}
		items = append(items, item)
	}
	state.Items = items
	return state
}

// Items returns a copy of the pantry contents in insertion order.
func (p *Pantry) Items() []model.PantryItem {
	return slices.Clone(p.store.State().Items)
}

// FreshNames returns the names of items whose status is fresh.
func (p *Pantry) FreshNames() []string {
	var names []string
	for _, item := range p.store.State().Items {
		if item.Status == model.StatusFresh {
			names = append(names, item.Name)
		}
	}
	return names
}

// Subscribe registers fn for pantry changes.
func (p *Pantry) Subscribe(fn func([]model.PantryItem)) func() {
	return p.store.Subscribe(func(s PantryState) { fn(slices.Clone(s.Items)) })
}

// AddItems creates one fresh item per draft. Either every draft is added or,
// if any draft is invalid, none is.
func (p *Pantry) AddItems(ctx context.Context, drafts []model.PantryDraft) ([]model.PantryItem, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	created := make([]model.PantryItem, 0, len(drafts))
	for i, draft := range drafts {
		draft.Name = strings.TrimSpace(draft.Name)
		if err := p.validate.Struct(draft); err != nil {
			return nil, fmt.Errorf("pantry item %d: %w", i, err)
		}

		category := strings.TrimSpace(draft.Category)
		if category == "" {
			category = "Other"
		}

		created = append(created, model.PantryItem{
			ID:       "pantry-" + p.opts.NewID(),
			Name:     draft.Name,
			Category: category,
			Location: draft.Location,
			Quantity: draft.Quantity,
			Status:   model.StatusFresh,
			AddedAt:  p.opts.Now(),
		})
	}

	err := p.store.Update(ctx, func(s PantryState) (PantryState, bool) {
		s.Items = append(slices.Clip(s.Items), created...)
		return s, true
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// RemoveItem deletes the item with the given id.
func (p *Pantry) RemoveItem(ctx context.Context, id string) error {
	found := false
	err := p.store.Update(ctx, func(s PantryState) (PantryState, bool) {
		items := slices.DeleteFunc(slices.Clone(s.Items), func(item model.PantryItem) bool {
			return item.ID == id
		})
		found = len(items) != len(s.Items)
		s.Items = items
		return s, found
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("pantry item %s: %w", id, ErrItemNotFound)
	}
	return nil
}

// UpdateStatus sets the status of the item with the given id.
func (p *Pantry) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	_, err := p.mutateItem(ctx, id, func(item *model.PantryItem) {
		item.Status = status
	})
	return err
}

// CycleStatus advances the item's status one step around fresh → low → out
// and returns the new status.
func (p *Pantry) CycleStatus(ctx context.Context, id string) (model.Status, error) {
	item, err := p.mutateItem(ctx, id, func(item *model.PantryItem) {
		item.Status = item.Status.Next()
	})
	if err != nil {
		return "", err
	}
	return item.Status, nil
}

// ClearAll empties the pantry.
func (p *Pantry) ClearAll(ctx context.Context) error {
	return p.store.Update(ctx, func(s PantryState) (PantryState, bool) {
		if len(s.Items) == 0 {
			return s, false
		}
		s.Items = []model.PantryItem{}
		return s, true
	})
}

func (p *Pantry) mutateItem(ctx context.Context, id string, fn func(*model.PantryItem)) (model.PantryItem, error) {
	var updated model.PantryItem
	found := false

	err := p.store.Update(ctx, func(s PantryState) (PantryState, bool) {
		idx := slices.IndexFunc(s.Items, func(item model.PantryItem) bool { return item.ID == id })
		if idx < 0 {
			return s, false
		}
		found = true
		items := slices.Clone(s.Items)
		fn(&items[idx])
		updated = items[idx]
		s.Items = items
		return s, true
	})
	if err != nil {
		return model.PantryItem{}, err
	}
	if !found {
		return model.PantryItem{}, fmt.Errorf("pantry item %s: %w", id, ErrItemNotFound)
	}
	return updated, nil
}
