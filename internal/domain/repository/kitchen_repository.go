package repository

import (
	"context"
	"time"

	"github.com/oksasatya/preppal/internal/domain/entity"
)

type KitchenRepository interface {
	List(ctx context.Context, owner string) ([]entity.KitchenItem, error)
	Upsert(ctx context.Context, owner, name string, bestBefore time.Time) error
	// Delete removes (owner, name); a missing row is not an error.
	Delete(ctx context.Context, owner, name string) error
}
