// Package model defines the domain types shared by the stores, the recipe
// generator and the CLI.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Location is where a pantry item is kept.
type Location string

const (
	// LocationFridge is the refrigerator.
	LocationFridge Location = "Fridge"
	// LocationFreezer is the freezer.
	LocationFreezer Location = "Freezer"
	// LocationPantry is dry storage.
	LocationPantry Location = "Pantry"
)

// ParseLocation resolves a location name case-insensitively.
func ParseLocation(s string) (Location, error) {
	for _, loc := range []Location{LocationFridge, LocationFreezer, LocationPantry} {
		if strings.EqualFold(strings.TrimSpace(s), string(loc)) {
			return loc, nil
		}
	}
	return "", fmt.Errorf("unknown location %q (want Fridge, Freezer or Pantry)", s)
}

// Status tracks how much of a pantry item is left.
type Status string

const (
	// StatusFresh means the item is stocked.
	StatusFresh Status = "fresh"
	// StatusLow means the item is running out.
	StatusLow Status = "low"
	// StatusOut means the item is used up.
	StatusOut Status = "out"
)

// Next returns the status that follows s in the fresh → low → out → fresh cycle.
func (s Status) Next() Status {
	switch s {
	case StatusFresh:
		return StatusLow
	case StatusLow:
		return StatusOut
	default:
		return StatusFresh
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusFresh || s == StatusLow || s == StatusOut
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want fresh, low or out)", s)
	}
	return status, nil
}

// PantryItem is one ingredient the user has on hand.
type PantryItem struct {
	AddedAt  time.Time `json:"addedAt"`
	Quantity *float64  `json:"quantity,omitempty"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Location Location  `json:"location"`
	Status   Status    `json:"status"`
}

// PantryDraft is the caller-supplied part of a pantry item. The store assigns
// the id, the status and the timestamp.
type PantryDraft struct {
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category"`
	Location Location `json:"location" validate:"required,oneof=Fridge Freezer Pantry"`
}

// DetectedItem is a grocery item recognised in a photo.
type DetectedItem struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}
