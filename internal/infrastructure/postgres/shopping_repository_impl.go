package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/internal/domain/repository"
)

type ShoppingListRepository struct {
	db DBTX
}

func NewShoppingListRepository(db DBTX) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) InsertIfAbsent(ctx context.Context, item *entity.ShoppingListItem) (bool, error) {
	ingredients := item.Ingredients
	if ingredients == nil {
		ingredients = []entity.ShoppingIngredient{}
	}
	b, err := json.Marshal(ingredients)
	if err != nil {
		return false, fmt.Errorf("encode ingredients: %w", err)
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO shoppinglist (email, recipe_id, title, ingredients)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, recipe_id) DO NOTHING
		RETURNING id, created_at
	`, item.OwnerEmail, item.RecipeID, item.Title, b)
	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert shopping item: %w", err)
	}
	return true, nil
}

func (r *ShoppingListRepository) List(ctx context.Context, owner string) ([]entity.ShoppingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, recipe_id, title, ingredients, created_at
		FROM shoppinglist
		WHERE email = $1
		ORDER BY created_at, id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	defer rows.Close()

	out := make([]entity.ShoppingListItem, 0)
	for rows.Next() {
		var (
			it  entity.ShoppingListItem
			raw []byte
		)
		if err := rows.Scan(&it.ID, &it.OwnerEmail, &it.RecipeID, &it.Title, &raw, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		if err := json.Unmarshal(raw, &it.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	return out, nil
}

// Delete removes the entry only when it belongs to owner.
func (r *ShoppingListRepository) Delete(ctx context.Context, owner, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM shoppinglist WHERE id = $1 AND email = $2`, id, owner); err != nil {
		if isInvalidID(err) {
			return nil
		}
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return nil
}

var _ repository.ShoppingListRepository = (*ShoppingListRepository)(nil)
