package entity

import (
	"strings"
	"time"
)

// ShoppingIngredient is an ingredient of a recipe on the shopping list.
type ShoppingIngredient struct {
	Name     string `json:"name"`
	Original string `json:"original"`
}

// ShoppingListItem is a recipe slated for shopping. Unique per (OwnerEmail, RecipeID).
type ShoppingListItem struct {
	ID          string
	OwnerEmail  string
	RecipeID    string
	Title       string
	Ingredients []ShoppingIngredient
	CreatedAt   time.Time
}

// MissingIngredients returns the ingredients whose name is not in onHand.
// onHand holds lower-cased kitchen item names.
func (i ShoppingListItem) MissingIngredients(onHand map[string]struct{}) []ShoppingIngredient {
	out := make([]ShoppingIngredient, 0, len(i.Ingredients))
	for _, ing := range i.Ingredients {
		if _, ok := onHand[strings.ToLower(strings.TrimSpace(ing.Name))]; ok {
			continue
		}
		out = append(out, ing)
	}
	return out
}
