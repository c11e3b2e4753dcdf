package main

import (
	"testing"
	"time"

	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestResolvePantryItem(t *testing.T) {
	items := []model.PantryItem{
		{ID: "pantry-1111aaaa-0000", Name: "Eggs"},
		{ID: "pantry-1111bbbb-0000", Name: "Rice"},
		{ID: "pantry-2222cccc-0000", Name: "Spinach"},
	}

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{name: "exact id", ref: "pantry-1111bbbb-0000", wantID: "pantry-1111bbbb-0000"},
		{name: "unique prefix", ref: "pantry-2222", wantID: "pantry-2222cccc-0000"},
		{name: "name ignoring case", ref: "  eggs ", wantID: "pantry-1111aaaa-0000"},
		{name: "ambiguous prefix", ref: "pantry-1111", wantErr: errAmbiguous},
		{name: "unknown", ref: "milk", wantErr: store.ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := resolvePantryItem(items, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, item.ID)
		})
	}
}

func TestResolveListItem(t *testing.T) {
	items := []model.ListItem{
		{ID: "list-aaaa", Name: "Milk"},
		{ID: "list-bbbb", Name: "Bread"},
	}

	item, err := resolveListItem(items, "BREAD")
	require.NoError(t, err)
	assert.Equal(t, "list-bbbb", item.ID)

	_, err = resolveListItem(items, "list-")
	assert.ErrorIs(t, err, errAmbiguous)

	_, err = resolveListItem(items, "Butter")
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "pantry-6f1c2a9e-41d2-4d47-9a53-b3e8d6c1f0aa", want: "pantry-6f1c2a9e"},
		{id: "list-abc", want: "list-abc"},
		{id: "1718000000000-2", want: "1718000000000-2"},
		{id: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, shortID(tt.id))
		})
	}
}

func TestResolveMealType(t *testing.T) {
	evening := time.Date(2026, 3, 4, 19, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		meal    string
		want    string
		wantErr bool
	}{
		{name: "time of day", meal: "", want: "Dinner"},
		{name: "lower case", meal: "breakfast", want: "Breakfast"},
		{name: "late night with space", meal: "late night", want: "Late-night"},
		{name: "unknown", meal: "brunch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMealType(tt.meal, evening)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipeIndex(t *testing.T) {
	assert.Equal(t, 2, recipeIndex(model.RecipeID(1718000000000, 2)))
	assert.Equal(t, 0, recipeIndex("1718000000000-0"))
	assert.Equal(t, -1, recipeIndex("no-index"))
	assert.Equal(t, -1, recipeIndex("plain"))
}

func TestFormatQuantity(t *testing.T) {
	assert.Empty(t, formatQuantity(nil))
	assert.Equal(t, "  ×2", formatQuantity(ptr(2.0)))
	assert.Equal(t, "  ×1.5", formatQuantity(ptr(1.5)))
}

func TestItemFilter(t *testing.T) {
	items := []model.PantryItem{
		{ID: "1", Location: model.LocationFridge, Status: model.StatusFresh},
		{ID: "2", Location: model.LocationFreezer, Status: model.StatusLow},
		{ID: "3", Location: model.LocationFridge, Status: model.StatusOut},
	}

	f, err := newItemFilter("fridge", "")
	require.NoError(t, err)
	assert.Len(t, f.apply(items), 2)

	f, err = newItemFilter("", "LOW")
	require.NoError(t, err)
	got := f.apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	_, err = newItemFilter("garage", "")
	assert.Error(t, err)
	_, err = newItemFilter("", "stale")
	assert.Error(t, err)

	assert.Len(t, items, 3, "filtering must not modify the input")
}
