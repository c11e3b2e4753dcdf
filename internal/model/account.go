package model

import (
	"slices"
	"time"
)

// Account is the single local user record: credit balances, the monthly
// generation allowance and usage counters.
type Account struct {
	LastResetDate           time.Time `json:"lastResetDate"`
	FavoriteRecipeIDs       []string  `json:"favoriteRecipes"`
	Credits                 int       `json:"credits"`
	MonthlyGenerations      int       `json:"monthlyGenerations"`
	TotalGenerated          int       `json:"totalGenerated"`
	TotalScanned            int       `json:"totalScanned"`
	TotalGenerationsAllTime int       `json:"totalGenerationsAllTime"`
	WasteItemsSaved         int       `json:"wasteItemsSaved"`
}

// IsFavorite reports whether the recipe id is in the favorites set.
func (a Account) IsFavorite(recipeID string) bool {
	return slices.Contains(a.FavoriteRecipeIDs, recipeID)
}

// SameMonth reports whether a and b fall in the same calendar month, judged in
// b's location.
func SameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}
