package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/internal/domain/repository"
)

type KitchenRepository struct {
	db DBTX
}

func NewKitchenRepository(db DBTX) *KitchenRepository {
	return &KitchenRepository{db: db}
}

func (r *KitchenRepository) List(ctx context.Context, owner string) ([]entity.KitchenItem, error) {
	rows, err := r.db.Query(ctx, `SELECT email, name, best_before FROM kitchen WHERE email = $1 ORDER BY name`, owner)
	if err != nil {
		return nil, fmt.Errorf("list kitchen: %w", err)
	}
	defer rows.Close()

	out := make([]entity.KitchenItem, 0)
	for rows.Next() {
		var it entity.KitchenItem
		if err := rows.Scan(&it.OwnerEmail, &it.Name, &it.BestBefore); err != nil {
			return nil, fmt.Errorf("scan kitchen item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list kitchen: %w", err)
	}
	return out, nil
}

func (r *KitchenRepository) Upsert(ctx context.Context, owner, name string, bestBefore time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO kitchen (email, name, best_before)
		VALUES ($1, $2, $3)
		ON CONFLICT (email, name) DO UPDATE SET best_before = EXCLUDED.best_before
	`, owner, name, bestBefore)
	if err != nil {
		return fmt.Errorf("upsert kitchen item %q: %w", name, err)
	}
	return nil
}

func (r *KitchenRepository) Delete(ctx context.Context, owner, name string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kitchen WHERE email = $1 AND name = $2`, owner, name); err != nil {
		return fmt.Errorf("delete kitchen item %q: %w", name, err)
	}
	return nil
}

var _ repository.KitchenRepository = (*KitchenRepository)(nil)
