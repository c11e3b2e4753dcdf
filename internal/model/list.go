package model

import "time"

// ListItem is an entry on the shopping list.
type ListItem struct {
	AddedAt time.Time `json:"addedAt"`
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Checked bool      `json:"checked"`
}
