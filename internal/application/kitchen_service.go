package application

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
)

type KitchenService struct {
	Repo    repo.KitchenRepository
	Logger  *logrus.Logger
	Workers int
}

func NewKitchenService(r repo.KitchenRepository, logger *logrus.Logger, workers int) *KitchenService {
	if workers <= 0 {
		workers = 1
	}
	return &KitchenService{Repo: r, Logger: logger, Workers: workers}
}

func (s *KitchenService) ListItems(ctx context.Context, owner string) ([]entity.KitchenItem, error) {
	items, err := s.Repo.List(ctx, owner)
	if err != nil {
		return nil, persistence("list kitchen items", err)
	}
	return items, nil
}

// ApplyBatch upserts or deletes every entry concurrently and waits for all
// of them. Entries that are invalid or fail are reported in a *BatchError;
// the others stay applied. Deleting an item that does not exist succeeds.
// The caller's slice is left untouched.
func (s *KitchenService) ApplyBatch(ctx context.Context, owner string, entries []entity.KitchenEntry) error {
	var (
		mu     sync.Mutex
		failed []EntryError
	)
	valid := make([]entity.KitchenEntry, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		switch {
		case e.Name == "":
			failed = append(failed, EntryError{Name: e.Name, Err: newValidationError("name", "is required")})
		case !e.Delete && e.BestBefore.IsZero():
			failed = append(failed, EntryError{Name: e.Name, Err: newValidationError("best_before", "is required")})
		default:
			valid = append(valid, e)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for _, e := range valid {
		g.Go(func() error {
			var err error
			if e.Delete {
				err = s.Repo.Delete(gctx, owner, e.Name)
			} else {
				err = s.Repo.Upsert(gctx, owner, e.Name, e.BestBefore)
			}
			if err != nil {
				mu.Lock()
				failed = append(failed, EntryError{Name: e.Name, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"failed": len(failed), "applied": len(entries) - len(failed)}).Error("kitchen batch partially failed")
		}
		return &BatchError{Failed: failed}
	}
	return nil
}
