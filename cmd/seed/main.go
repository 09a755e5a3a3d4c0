package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/preppal/config"
	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/domain/entity"
	pginfra "github.com/oksasatya/preppal/internal/infrastructure/postgres"
	"github.com/oksasatya/preppal/pkg/helpers"
)

const (
	demoEmail    = "demo@preppal.local"
	demoPassword = "password123"
	demoName     = "demoUser"
	demoRecipe   = "716429"
)

// seed creates a demo account with one favourite, one shopping list entry
// and a stocked kitchen. Running it twice leaves the data unchanged.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	kitchenRepo := pginfra.NewKitchenRepository(pool)
	creds := application.NewCredentialService(pginfra.NewUserRepository(pool), helpers.NewPasswordHasher(cfg.BcryptCost), logger)
	favs := application.NewFavouriteService(pginfra.NewFavouriteRepository(pool), nil, logger)
	shopping := application.NewShoppingService(pginfra.NewShoppingListRepository(pool), kitchenRepo, logger)
	kitchen := application.NewKitchenService(kitchenRepo, logger, cfg.KitchenBatchWorkers)

	if _, err := creds.Register(ctx, demoName, demoEmail, demoPassword); err != nil && !errors.Is(err, application.ErrEmailInUse) {
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithField("email", demoEmail).Info("seeded user")

	if !favs.IsFavourited(ctx, demoEmail, demoRecipe) {
		_, err := favs.Toggle(ctx, demoEmail, demoRecipe, application.FavouriteInput{
			Title:       "Pasta with Garlic, Scallions, Cauliflower & Breadcrumbs",
			Details:     "A quick weeknight pasta.",
			HealthScore: 19,
			CookTime:    45,
			WWPoints:    17,
			Servings:    2,
			Nutrition:   entity.Nutrition{Calories: "584k", Protein: "19g", Carbs: "84g", Fat: "20g"},
			Ingredients: []entity.Ingredient{
				{Original: "1 tbsp butter"},
				{Original: "2 cups cauliflower florets"},
				{Original: "6 oz pasta"},
			},
			Instructions: []entity.Instruction{
				{Number: 1, Step: "Toast the breadcrumbs in butter."},
				{Number: 2, Step: "Cook the pasta and cauliflower together."},
			},
		})
		if err != nil {
			log.Fatalf("failed to seed favourite: %v", err)
		}
	}

	if _, err := shopping.Add(ctx, demoEmail, demoRecipe, "Pasta with Garlic", []entity.ShoppingIngredient{
		{Name: "butter", Original: "1 tbsp butter"},
		{Name: "cauliflower", Original: "2 cups cauliflower florets"},
		{Name: "pasta", Original: "6 oz pasta"},
	}); err != nil {
		log.Fatalf("failed to seed shopping list: %v", err)
	}

	bestBefore := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	if err := kitchen.ApplyBatch(ctx, demoEmail, []entity.KitchenEntry{
		{Name: "butter", BestBefore: bestBefore},
		{Name: "pasta", BestBefore: bestBefore.AddDate(0, 6, 0)},
	}); err != nil {
		log.Fatalf("failed to seed kitchen: %v", err)
	}
	logger.WithField("password", demoPassword).Info("demo data ready")
}
