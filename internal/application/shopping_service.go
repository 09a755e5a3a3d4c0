package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
)

type AddResult int

const (
	Added AddResult = iota + 1
	AlreadyPresent
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already_present"
	}
	return "unknown"
}

// ShoppingList is the owner's shopping list joined with what is already in
// their kitchen.
type ShoppingList struct {
	Items   []entity.ShoppingListItem
	IsEmpty bool
	// OnHand holds lower-cased kitchen item names.
	OnHand map[string]struct{}
}

// Missing lists the ingredients of item that are not in the kitchen.
func (l *ShoppingList) Missing(item entity.ShoppingListItem) []entity.ShoppingIngredient {
	return item.MissingIngredients(l.OnHand)
}

type ShoppingService struct {
	Repo    repo.ShoppingListRepository
	Kitchen repo.KitchenRepository
	Logger  *logrus.Logger
}

func NewShoppingService(r repo.ShoppingListRepository, kitchen repo.KitchenRepository, logger *logrus.Logger) *ShoppingService {
	return &ShoppingService{Repo: r, Kitchen: kitchen, Logger: logger}
}

// Add puts recipeID on owner's list. A recipe already listed is left as is.
func (s *ShoppingService) Add(ctx context.Context, owner, recipeID, title string, ingredients []entity.ShoppingIngredient) (AddResult, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return 0, newValidationError("recipe_id", "is required")
	}
	if ingredients == nil {
		ingredients = []entity.ShoppingIngredient{}
	}
	item := &entity.ShoppingListItem{OwnerEmail: owner, RecipeID: recipeID, Title: title, Ingredients: ingredients}
	inserted, err := s.Repo.InsertIfAbsent(ctx, item)
	if err != nil {
		return 0, persistence("add shopping item", err)
	}
	if !inserted {
		return AlreadyPresent, nil
	}
	return Added, nil
}

// Remove deletes entryID from owner's list; other owners' entries are never touched.
func (s *ShoppingService) Remove(ctx context.Context, owner, entryID string) error {
	if err := s.Repo.Delete(ctx, owner, entryID); err != nil {
		return persistence("remove shopping item", err)
	}
	return nil
}

func (s *ShoppingService) List(ctx context.Context, owner string) (*ShoppingList, error) {
	items, err := s.Repo.List(ctx, owner)
	if err != nil {
		return nil, persistence("list shopping items", err)
	}
	kitchen, err := s.Kitchen.List(ctx, owner)
	if err != nil {
		return nil, persistence("list kitchen items", err)
	}
	onHand := make(map[string]struct{}, len(kitchen))
	for _, k := range kitchen {
		onHand[strings.ToLower(strings.TrimSpace(k.Name))] = struct{}{}
	}
	return &ShoppingList{Items: items, IsEmpty: len(items) == 0, OnHand: onHand}, nil
}
