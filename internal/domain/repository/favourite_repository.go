package repository

import (
	"context"

	"github.com/oksasatya/preppal/internal/domain/entity"
)

// FavouriteRepository persists saved recipes; every call is scoped by owner email.
type FavouriteRepository interface {
	// InsertIfAbsent inserts f unless (owner, recipe) already exists and
	// reports whether a row was written.
	InsertIfAbsent(ctx context.Context, f *entity.FavouriteRecipe) (bool, error)
	Get(ctx context.Context, owner, recipeID string) (*entity.FavouriteRecipe, error)
	List(ctx context.Context, owner string, limit int) ([]entity.FavouriteRecipe, error)
	Count(ctx context.Context, owner string) (int, error)
	Replace(ctx context.Context, f *entity.FavouriteRecipe) error
	Delete(ctx context.Context, owner, recipeID string) (bool, error)
}
