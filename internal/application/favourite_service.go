package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
	"github.com/oksasatya/preppal/pkg/helpers"
)

// FavouriteIndex mirrors favourites into a search backend.
type FavouriteIndex interface {
	Index(ctx context.Context, f *entity.FavouriteRecipe) error
	Delete(ctx context.Context, owner, recipeID string) error
	Search(ctx context.Context, owner, q string, size int) ([]entity.FavouriteHit, error)
}

// FavouriteInput is the recipe snapshot saved when a user favourites it.
type FavouriteInput struct {
	Title        string
	Image        string
	Details      string
	HealthScore  int
	CookTime     int
	WWPoints     int
	Servings     int
	Nutrition    entity.Nutrition
	Ingredients  []entity.Ingredient
	Instructions []entity.Instruction
}

// FavouriteUpdate replaces the editable part of a saved recipe.
// Ingredients and Instructions replace the existing lists wholesale.
type FavouriteUpdate struct {
	Title        string
	Details      string
	HealthScore  int
	CookTime     int
	Servings     int
	Nutrition    entity.Nutrition
	Ingredients  []string
	Instructions []string
}

type FavouriteService struct {
	Repo   repo.FavouriteRepository
	Index  FavouriteIndex // optional
	Logger *logrus.Logger
}

func NewFavouriteService(r repo.FavouriteRepository, index FavouriteIndex, logger *logrus.Logger) *FavouriteService {
	return &FavouriteService{Repo: r, Index: index, Logger: logger}
}

// Toggle removes the favourite when present and saves it otherwise.
// It reports whether the recipe is favourited afterwards.
func (s *FavouriteService) Toggle(ctx context.Context, owner, recipeID string, in FavouriteInput) (bool, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return false, newValidationError("recipe_id", "is required")
	}

	deleted, err := s.Repo.Delete(ctx, owner, recipeID)
	if err != nil {
		return false, persistence("delete favourite", err)
	}
	if deleted {
		s.unindex(ctx, owner, recipeID)
		return false, nil
	}

	f := &entity.FavouriteRecipe{
		OwnerEmail:   owner,
		RecipeID:     recipeID,
		Title:        in.Title,
		Image:        in.Image,
		Details:      helpers.StripMarkup(in.Details),
		HealthScore:  in.HealthScore,
		CookTime:     in.CookTime,
		WWPoints:     in.WWPoints,
		Servings:     in.Servings,
		Nutrition:    in.Nutrition,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	inserted, err := s.Repo.InsertIfAbsent(ctx, f)
	if err != nil {
		return false, persistence("insert favourite", err)
	}
	// a concurrent toggle created it first; it is favourited either way
	if !inserted {
		return true, nil
	}
	s.index(ctx, f)
	return true, nil
}

// Get returns ErrNotFound when owner has not saved recipeID.
func (s *FavouriteService) Get(ctx context.Context, owner, recipeID string) (*entity.FavouriteRecipe, error) {
	f, err := s.Repo.Get(ctx, owner, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get favourite", err)
	}
	return f, nil
}

func (s *FavouriteService) IsFavourited(ctx context.Context, owner, recipeID string) bool {
	_, err := s.Get(ctx, owner, recipeID)
	if err != nil && !errors.Is(err, ErrNotFound) && s.Logger != nil {
		s.Logger.WithError(err).WithField("recipe_id", recipeID).Warn("favourite lookup failed")
	}
	return err == nil
}

func (s *FavouriteService) List(ctx context.Context, owner string) ([]entity.FavouriteRecipe, error) {
	out, err := s.Repo.List(ctx, owner, 0)
	if err != nil {
		return nil, persistence("list favourites", err)
	}
	return out, nil
}

// Overview returns the first limit favourites and the total count.
func (s *FavouriteService) Overview(ctx context.Context, owner string, limit int) ([]entity.FavouriteRecipe, int, error) {
	if limit <= 0 {
		limit = 2
	}
	items, err := s.Repo.List(ctx, owner, limit)
	if err != nil {
		return nil, 0, persistence("list favourites", err)
	}
	total, err := s.Repo.Count(ctx, owner)
	if err != nil {
		return nil, 0, persistence("count favourites", err)
	}
	return items, total, nil
}

// Update overwrites owner's copy of recipeID. Recipes the owner has not
// saved report ErrNotFound.
func (s *FavouriteService) Update(ctx context.Context, owner, recipeID string, in FavouriteUpdate) (*entity.FavouriteRecipe, error) {
	f, err := s.Get(ctx, owner, recipeID)
	if err != nil {
		return nil, err
	}
	f.Title = in.Title
	f.Details = helpers.StripMarkup(in.Details)
	f.HealthScore = in.HealthScore
	f.CookTime = in.CookTime
	f.Servings = in.Servings
	f.Nutrition = in.Nutrition
	f.Ingredients = entity.WrapIngredients(in.Ingredients)
	f.Instructions = entity.NumberedInstructions(in.Instructions)

	if err := s.Repo.Replace(ctx, f); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("update favourite", err)
	}
	s.index(ctx, f)
	return f, nil
}

// Search runs a full-text query over owner's favourites. Without a search
// backend it returns no hits.
func (s *FavouriteService) Search(ctx context.Context, owner, q string, size int) ([]entity.FavouriteHit, error) {
	q = strings.TrimSpace(q)
	if q == "" || s.Index == nil {
		return []entity.FavouriteHit{}, nil
	}
	hits, err := s.Index.Search(ctx, owner, q, size)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("favourite search failed")
		}
		return nil, err
	}
	return hits, nil
}

func (s *FavouriteService) index(ctx context.Context, f *entity.FavouriteRecipe) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, f); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("recipe_id", f.RecipeID).Warn("index favourite failed")
	}
}

func (s *FavouriteService) unindex(ctx context.Context, owner, recipeID string) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Delete(ctx, owner, recipeID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("recipe_id", recipeID).Warn("unindex favourite failed")
	}
}
