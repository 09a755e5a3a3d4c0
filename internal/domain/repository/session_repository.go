package repository

import (
	"context"
	"time"

	"github.com/oksasatya/preppal/internal/domain/entity"
)

// SessionRepository stores sessions keyed by their opaque id with a fixed TTL.
// Updates never extend the TTL set by Create.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	// IncrClicks bumps the browsing click counter and returns the new value.
	IncrClicks(ctx context.Context, id string) (int, error)
	SetRecipeCount(ctx context.Context, id string, n int) error
	SetDateOfBirth(ctx context.Context, id, dob string) error
	SetSearchIngredients(ctx context.Context, id string, ingredients []string) error
	Delete(ctx context.Context, id string) error
}
