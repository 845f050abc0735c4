package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/newsroomlabs/admin-auth/internal/api/http"
	"github.com/newsroomlabs/admin-auth/internal/api/http/handlers"
	"github.com/newsroomlabs/admin-auth/internal/auth"
	"github.com/newsroomlabs/admin-auth/internal/config"
	"github.com/newsroomlabs/admin-auth/internal/observability"
	"github.com/newsroomlabs/admin-auth/internal/persistence"
	"github.com/newsroomlabs/admin-auth/internal/repository"
	"github.com/newsroomlabs/admin-auth/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Includes a missing AUTH_JWT_SECRET: refuse to start rather than
		// fall back to a baked-in signing key.
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

	metrics := observability.NewMetrics()

	adminRepo := repository.NewAdminRepository(pg.PoolHandle())
	limiter := service.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginWindow())
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AdminRepo: adminRepo,
		Limiter:   limiter,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Admin:          handlers.NewAdminHandler(authService),
		Accounts:       handlers.NewAccountsHandler(authService),
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
