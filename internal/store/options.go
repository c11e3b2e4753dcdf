package store

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Storage keys of the application stores.
const (
	PantryStoreName  = "pantry-storage"
	ListStoreName    = "list-storage"
	AccountStoreName = "user-storage"
	RecipeStoreName  = "recipes-storage"
)

// ErrItemNotFound is returned when an id does not match any item.
var ErrItemNotFound = errors.New("item not found")

// Options carries the collaborators shared by the domain stores.
type Options struct {
	Logger *slog.Logger
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// NewID returns a fresh unique id; defaults to a random UUID.
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}
