package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/rowanvale/embla/internal"
	"github.com/rowanvale/embla/internal/billing"
	"github.com/rowanvale/embla/internal/cache"
	"github.com/rowanvale/embla/internal/events"
	"github.com/rowanvale/embla/internal/handler/api"
	"github.com/rowanvale/embla/internal/middleware"
	"github.com/rowanvale/embla/internal/postgres"
	"github.com/rowanvale/embla/internal/router"
	"github.com/rowanvale/embla/internal/routes"
	"github.com/rowanvale/embla/internal/service"
	"github.com/rowanvale/embla/internal/shipping"
	"github.com/rowanvale/embla/internal/tax"
	"github.com/rowanvale/embla/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// database/sql connection for migrations only
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")

	// pgx connection pool for the application
	store, err := postgres.NewStore(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	cartStore := postgres.NewCartStore(store)
	orderStore := postgres.NewOrderStore(store, cartStore)
	productStore := postgres.NewProductStore(store)
	categoryStore := postgres.NewCategoryStore(store)

	// Cart cache: Redis when configured, otherwise a no-op
	var cartCache cache.CartCache = cache.NewNoopCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		defer redisClient.Close()
		cartCache = cache.NewRedisCache(redisClient)
		logger.Info("Redis cart cache initialized", "addr", cfg.RedisAddr)
	}

	// Order event publisher: NATS when configured, otherwise a no-op
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsUrl != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsUrl)
		if err != nil {
			return fmt.Errorf("failed to initialize nats publisher: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("NATS event publisher initialized", "url", cfg.NatsUrl)
	}

	// Billing provider: Stripe when a key is configured, mock otherwise
	var billingProvider billing.Provider
	if cfg.Stripe.SecretKey != "" {
		stripeProvider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Stripe provider: %w", err)
		}
		billingProvider = stripeProvider
		logger.Info("Stripe billing provider initialized", "test_mode", stripeProvider.IsTestMode())
	} else {
		billingProvider = billing.NewMockProvider()
		logger.Warn("No Stripe key configured, using mock billing provider")
	}

	// HTTP and business metrics share one registry
	metrics := middleware.NewMetrics("embla")
	business := telemetry.NewBusinessMetrics("embla", metrics.Registry())

	// Pricing policy
	quoter := shipping.NewThresholdQuoter(cfg.Pricing.FlatShippingRate, cfg.Pricing.FreeShippingThreshold)
	taxCalculator := tax.NewPercentageCalculator(cfg.Pricing.TaxRate)

	// Services
	cartService := service.NewCartService(cartStore, productStore, cartCache, business, logger)
	checkoutService := service.NewCheckoutService(orderStore, cartStore, quoter, taxCalculator, cartCache, publisher, business, logger)
	orderService := service.NewOrderService(orderStore, billingProvider, publisher, business, logger)
	productService := service.NewProductService(productStore, logger)
	categoryService := service.NewCategoryService(categoryStore, logger)

	// Router with the global middleware chain
	r := router.New(
		middleware.RequestID,
		middleware.WithUser,
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		router.Logger(logger),
		router.Recovery(logger),
		router.CORS([]string{"*"}),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		CartHandler:     api.NewCartHandler(cartService, logger),
		CategoryHandler: api.NewCategoryHandler(categoryService, logger),
		CheckoutHandler: api.NewCheckoutHandler(checkoutService, logger),
		OrderHandler:    api.NewOrderHandler(orderService, logger),
		ProductHandler:  api.NewProductHandler(productService, logger),
	})

	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Env)
	return http.ListenAndServe(addr, r)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
