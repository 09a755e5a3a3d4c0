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

type FavouriteRepository struct {
	db DBTX
}

func NewFavouriteRepository(db DBTX) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

const favouriteColumns = `id, email, recipe_id, title, image, details, health_score, cook_time, ww_points, servings,
		calories, protein, carbs, fat, ingredients, instructions, created_at, updated_at`

func (r *FavouriteRepository) InsertIfAbsent(ctx context.Context, f *entity.FavouriteRecipe) (bool, error) {
	ingredients, instructions, err := marshalSteps(f)
	if err != nil {
		return false, err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO favourites (email, recipe_id, title, image, details, health_score, cook_time, ww_points, servings,
			calories, protein, carbs, fat, ingredients, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (email, recipe_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`, f.OwnerEmail, f.RecipeID, f.Title, f.Image, f.Details, f.HealthScore, f.CookTime, f.WWPoints, f.Servings,
		f.Nutrition.Calories, f.Nutrition.Protein, f.Nutrition.Carbs, f.Nutrition.Fat, ingredients, instructions)

	if err := row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert favourite: %w", err)
	}
	return true, nil
}

func (r *FavouriteRepository) Get(ctx context.Context, owner, recipeID string) (*entity.FavouriteRecipe, error) {
	row := r.db.QueryRow(ctx, `SELECT `+favouriteColumns+` FROM favourites WHERE email = $1 AND recipe_id = $2`, owner, recipeID)
	f, err := scanFavourite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select favourite: %w", err)
	}
	return f, nil
}

// List returns the owner's favourites in insertion order; limit <= 0 means all.
func (r *FavouriteRepository) List(ctx context.Context, owner string, limit int) ([]entity.FavouriteRecipe, error) {
	q := `SELECT ` + favouriteColumns + ` FROM favourites WHERE email = $1 ORDER BY created_at, id`
	args := []any{owner}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	out := make([]entity.FavouriteRecipe, 0)
	for rows.Next() {
		f, err := scanFavourite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	return out, nil
}

func (r *FavouriteRepository) Count(ctx context.Context, owner string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM favourites WHERE email = $1`, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favourites: %w", err)
	}
	return n, nil
}

// Replace overwrites every mutable column of the (owner, recipe) row.
func (r *FavouriteRepository) Replace(ctx context.Context, f *entity.FavouriteRecipe) error {
	ingredients, instructions, err := marshalSteps(f)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE favourites
		SET title = $3, details = $4, health_score = $5, cook_time = $6, servings = $7,
			calories = $8, protein = $9, carbs = $10, fat = $11,
			ingredients = $12, instructions = $13, updated_at = now()
		WHERE email = $1 AND recipe_id = $2
		RETURNING updated_at
	`, f.OwnerEmail, f.RecipeID, f.Title, f.Details, f.HealthScore, f.CookTime, f.Servings,
		f.Nutrition.Calories, f.Nutrition.Protein, f.Nutrition.Carbs, f.Nutrition.Fat, ingredients, instructions)
	if err := row.Scan(&f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update favourite: %w", err)
	}
	return nil
}

func (r *FavouriteRepository) Delete(ctx context.Context, owner, recipeID string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM favourites WHERE email = $1 AND recipe_id = $2`, owner, recipeID)
	if err != nil {
		return false, fmt.Errorf("delete favourite: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func marshalSteps(f *entity.FavouriteRecipe) ([]byte, []byte, error) {
	ingredients := f.Ingredients
	if ingredients == nil {
		ingredients = []entity.Ingredient{}
	}
	instructions := f.Instructions
	if instructions == nil {
		instructions = []entity.Instruction{}
	}
	ib, err := json.Marshal(ingredients)
	if err != nil {
		return nil, nil, fmt.Errorf("encode ingredients: %w", err)
	}
	sb, err := json.Marshal(instructions)
	if err != nil {
		return nil, nil, fmt.Errorf("encode instructions: %w", err)
	}
	return ib, sb, nil
}

func scanFavourite(row pgx.Row) (*entity.FavouriteRecipe, error) {
	f := &entity.FavouriteRecipe{}
	var ingredients, instructions []byte
	if err := row.Scan(&f.ID, &f.OwnerEmail, &f.RecipeID, &f.Title, &f.Image, &f.Details,
		&f.HealthScore, &f.CookTime, &f.WWPoints, &f.Servings,
		&f.Nutrition.Calories, &f.Nutrition.Protein, &f.Nutrition.Carbs, &f.Nutrition.Fat,
		&ingredients, &instructions, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ingredients, &f.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if err := json.Unmarshal(instructions, &f.Instructions); err != nil {
		return nil, fmt.Errorf("decode instructions: %w", err)
	}
	return f, nil
}

var _ repository.FavouriteRepository = (*FavouriteRepository)(nil)
