package entity

import "time"

// DateLayout is the wire and storage format of best-before dates.
const DateLayout = "2006-01-02"

// KitchenItem is an ingredient the user has on hand. Unique per (OwnerEmail, Name).
// Name keeps the user's casing.
type KitchenItem struct {
	OwnerEmail string
	Name       string
	BestBefore time.Time
}

// KitchenEntry is one line of a client-submitted kitchen batch.
type KitchenEntry struct {
	Name       string
	BestBefore time.Time
	Delete     bool
}
