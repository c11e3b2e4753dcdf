package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/pantrychef/internal/model"
)

// ListState is the persisted shopping list document.
type ListState struct {
	Items []model.ListItem `json:"items"`
}

// ShoppingList is the list of things to buy. Names are unique ignoring case.
type ShoppingList struct {
	store *Store[ListState]
	opts  Options
}

// OpenShoppingList hydrates the shopping list store.
func OpenShoppingList(ctx context.Context, backend Backend, opts Options) (*ShoppingList, error) {
	opts = opts.withDefaults()

	s, err := Open(ctx, backend, Config[ListState]{
		Name:     ListStoreName,
		Default:  func() ListState { return ListState{Items: []model.ListItem{}} },
		Sanitize: sanitizeList,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &ShoppingList{store: s, opts: opts}, nil
}

func sanitizeList(state ListState) ListState {
	seen := make(map[string]bool, len(state.Items))
	items := make([]model.ListItem, 0, len(state.Items))
	for _, item := range state.Items {
		key := nameKey(item.Name)
		if item.ID == "" || key == "" || seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, item)
	}
	state.Items = items
	return state
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Items returns a copy of the list in insertion order.
func (l *ShoppingList) Items() []model.ListItem {
	return slices.Clone(l.store.State().Items)
}

// Subscribe registers fn for list changes.
func (l *ShoppingList) Subscribe(fn func([]model.ListItem)) func() {
	return l.store.Subscribe(func(s ListState) { fn(slices.Clone(s.Items)) })
}

// AddItem appends name unless an item with the same name is already listed.
// It reports whether an item was added. Blank names are ignored.
func (l *ShoppingList) AddItem(ctx context.Context, name string) (bool, error) {
	added, err := l.AddMultiple(ctx, []string{name})
	return added == 1, err
}

// AddMultiple appends every name not already present, comparing
// case-insensitively against the list and the rest of the batch. It returns
// how many items were added.
func (l *ShoppingList) AddMultiple(ctx context.Context, names []string) (int, error) {
	added := 0
	err := l.store.Update(ctx, func(s ListState) (ListState, bool) {
		seen := make(map[string]bool, len(s.Items)+len(names))
		for _, item := range s.Items {
			seen[nameKey(item.Name)] = true
		}

		items := slices.Clip(s.Items)
		for _, name := range names {
			key := nameKey(name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, model.ListItem{
				ID:      "list-" + l.opts.NewID(),
				Name:    strings.TrimSpace(name),
				AddedAt: l.opts.Now(),
			})
		}

		added = len(items) - len(s.Items)
		s.Items = items
		return s, added > 0
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// ToggleItem flips the checked flag of the item with the given id.
func (l *ShoppingList) ToggleItem(ctx context.Context, id string) error {
	found := false
	err := l.store.Update(ctx, func(s ListState) (ListState, bool) {
		idx := slices.IndexFunc(s.Items, func(item model.ListItem) bool { return item.ID == id })
		if idx < 0 {
			return s, false
		}
		found = true
		items := slices.Clone(s.Items)
		items[idx].Checked = !items[idx].Checked
		s.Items = items
		return s, true
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("list item %s: %w", id, ErrItemNotFound)
	}
	return nil
}

// RemoveItem deletes the item with the given id.
func (l *ShoppingList) RemoveItem(ctx context.Context, id string) error {
	found := false
	err := l.store.Update(ctx, func(s ListState) (ListState, bool) {
		items := slices.DeleteFunc(slices.Clone(s.Items), func(item model.ListItem) bool {
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
		return fmt.Errorf("list item %s: %w", id, ErrItemNotFound)
	}
	return nil
}

// ClearChecked removes every checked item and returns how many were removed.
func (l *ShoppingList) ClearChecked(ctx context.Context) (int, error) {
	removed := 0
	err := l.store.Update(ctx, func(s ListState) (ListState, bool) {
		items := slices.DeleteFunc(slices.Clone(s.Items), func(item model.ListItem) bool {
			return item.Checked
		})
		removed = len(s.Items) - len(items)
		s.Items = items
		return s, removed > 0
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearAll empties the list.
func (l *ShoppingList) ClearAll(ctx context.Context) error {
	return l.store.Update(ctx, func(s ListState) (ListState, bool) {
		if len(s.Items) == 0 {
			return s, false
		}
		s.Items = []model.ListItem{}
		return s, true
	})
}
