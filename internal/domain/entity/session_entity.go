package entity

import "time"

// Session is the per-browser authenticated state kept in the session store.
type Session struct {
	ID            string
	UserID        string
	Email         string
	Username      string
	Authenticated bool
	RecipeCount   int
	ClickCount    int
	DateOfBirth   string
	// SearchIngredients is the ingredient list built on the search page.
	SearchIngredients []string
	CreatedAt         time.Time
}
