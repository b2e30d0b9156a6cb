package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/routes"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
	cartsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/cart"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	checkoutsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/checkout"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/prefs"
	staffsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/staff"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/storage"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/db"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/formrelay"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/gemini"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	kvRepo, err := storage.NewRepo(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create kv repository", err)
		os.Exit(1)
	}
	if err := kvRepo.Migrate(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to migrate kv schema", err)
		os.Exit(1)
	}

	// Redis is optional; without it the assist cache and rate limiting are
	// simply disabled.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, assist cache and rate limiting disabled")
	}

	catalogStore := catalog.Load(context.Background(), cfg.Catalog, logg)

	cartStore, err := cartsvc.NewKVStore(kvRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	carts, err := cartsvc.NewManager(cartStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	relayClient, err := formrelay.NewClient(cfg.FormRelay)
	if err != nil {
		logg.Error(context.Background(), "failed to create form relay client", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(relayClient, carts, cfg.Cart.ClearDelay, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	// Without an API key the assist service serves its fallback copy.
	var geminiClient *gemini.Client
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.Gemini)
		if err != nil {
			logg.Error(context.Background(), "failed to create gemini client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "gemini api key not configured, AI features degrade to fallbacks")
	}
	assistService, err := newAssistService(geminiClient, catalogStore, redisClient, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create assist service", err)
		os.Exit(1)
	}

	prefsService, err := prefs.NewService(kvRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create preferences service", err)
		os.Exit(1)
	}

	staffService, err := staffsvc.NewService(cfg.Staff, cfg.JWT, catalogStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": catalogStore.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient,
			catalogStore, carts, checkoutService, assistService, prefsService, staffService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// newAssistService exists because the assist constructor's generator and cache
// parameters are interfaces: a typed nil *gemini.Client or *redis.Client
// passed directly would defeat the service's nil checks.
func newAssistService(geminiClient *gemini.Client, catalogStore *catalog.Store, redisClient *redis.Client, cfg *config.Config, logg *logger.Logger) (*assist.Service, error) {
	switch {
	case geminiClient == nil && redisClient == nil:
		return assist.NewService(nil, catalogStore, nil, cfg.Assist.CacheTTL, logg)
	case geminiClient == nil:
		return assist.NewService(nil, catalogStore, redisClient, cfg.Assist.CacheTTL, logg)
	case redisClient == nil:
		return assist.NewService(geminiClient, catalogStore, nil, cfg.Assist.CacheTTL, logg)
	default:
		return assist.NewService(geminiClient, catalogStore, redisClient, cfg.Assist.CacheTTL, logg)
	}
}
