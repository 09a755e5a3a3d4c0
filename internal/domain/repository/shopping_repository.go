package repository

import (
	"context"

	"github.com/oksasatya/preppal/internal/domain/entity"
)

type ShoppingListRepository interface {
	InsertIfAbsent(ctx context.Context, item *entity.ShoppingListItem) (bool, error)
	List(ctx context.Context, owner string) ([]entity.ShoppingListItem, error)
	Delete(ctx context.Context, owner, id string) error
}
