package router

import (
	"context"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/container"
	"github.com/oksasatya/preppal/internal/infrastructure/postgres"
	"github.com/oksasatya/preppal/internal/infrastructure/redisstore"
	"github.com/oksasatya/preppal/internal/infrastructure/search"
	handlers "github.com/oksasatya/preppal/internal/interface/http"
	"github.com/oksasatya/preppal/internal/interface/middleware"
	"github.com/oksasatya/preppal/internal/router/modules"
	"github.com/oksasatya/preppal/pkg/helpers"
)

// Services bundles the application layer so callers other than the router,
// such as the seed command, can reuse the same wiring.
type Services struct {
	Credentials *application.CredentialService
	Sessions    *application.SessionService
	Resets      *application.ResetService
	Favourites  *application.FavouriteService
	Shopping    *application.ShoppingService
	Kitchen     *application.KitchenService
}

// BuildServices wires repositories and application services from the container.
func BuildServices() *Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := postgres.NewUserRepository(pool)
	kitchenRepo := postgres.NewKitchenRepository(pool)

	creds := application.NewCredentialService(users, helpers.NewPasswordHasher(cfg.BcryptCost), logger)
	sessions := application.NewSessionService(redisstore.NewSessionStore(container.GetRedis()), creds, logger, cfg.SessionTTL)
	resets := application.NewResetService(
		creds,
		helpers.NewResetSigner(cfg.ResetTokenSecret, cfg.ResetTokenTTL),
		container.GetMailSender(),
		logger,
		cfg.AppBaseURL,
		cfg.AppName,
		cfg.MailFrom,
	)

	favs := application.NewFavouriteService(postgres.NewFavouriteRepository(pool), nil, logger)
	if es := container.GetES(); es != nil {
		favs.Index = search.NewFavouriteIndex(es, cfg.ESFavouritesIndex)
	}

	return &Services{
		Credentials: creds,
		Sessions:    sessions,
		Resets:      resets,
		Favourites:  favs,
		Shopping:    application.NewShoppingService(postgres.NewShoppingListRepository(pool), kitchenRepo, logger),
		Kitchen:     application.NewKitchenService(kitchenRepo, logger, cfg.KitchenBatchWorkers),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	cookies := helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure)
	guard := modules.Guard(middleware.SessionAuth(svc.Sessions, cookies, logger))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Sessions, svc.Resets, cookies, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Sessions, svc.Credentials, svc.Favourites, logger), guard))
	r.Add(modules.NewFavouriteModule(handlers.NewFavouriteHandler(svc.Favourites, logger), guard))
	r.Add(modules.NewPantryModule(
		handlers.NewShoppingHandler(svc.Shopping, logger),
		handlers.NewKitchenHandler(svc.Kitchen, logger),
		guard,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	r.AddCheck("postgres", func(ctx context.Context) error { return container.GetPGPool().Ping(ctx) })
	r.AddCheck("redis", func(ctx context.Context) error { return container.GetRedis().Ping(ctx).Err() })
}
