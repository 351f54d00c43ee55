package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-service/internal/api/http"
	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/persistence"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	"github.com/spec-kit/storefront-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	featuredRepo := repository.NewFeaturedRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(dispatcher, activityRepo, logger)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		StaffRepo:    staffRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService)

	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: productRepo,
		Cache:       redis.Client,
		CacheTTL:    cfg.Cache.ProductTTL(),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	couponService := service.NewCouponService(couponRepo, dispatcher)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Coupons:     couponService,
		Dispatcher:  dispatcher,
	})
	featuredService := service.NewFeaturedService(service.FeaturedDependencies{
		FeaturedRepo: featuredRepo,
		ProductRepo:  productRepo,
		Cache:        redis.Client,
		CacheTTL:     cfg.Cache.FeaturedTTL(),
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	staffService := service.NewStaffService(staffRepo, dispatcher, cfg.Auth.BcryptCost)
	customerService := service.NewCustomerService(customerRepo, dispatcher)
	activityService := service.NewActivityService(activityRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Storefront:     handlers.NewStorefrontHandler(productService, featuredService, couponService, orderService, customerService),
		Products:       handlers.NewProductsHandler(productService),
		Coupons:        handlers.NewCouponsHandler(couponService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Featured:       handlers.NewFeaturedHandler(featuredService),
		Staff:          handlers.NewStaffHandler(staffService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Activity:       handlers.NewActivityHandler(activityService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
