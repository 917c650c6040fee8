package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	postgresdb "accounts/internal/adapter/database/postgres"
	postgresrepo "accounts/internal/adapter/database/postgres/repository"
	sqlitedb "accounts/internal/adapter/database/sqlite"
	sqliterepo "accounts/internal/adapter/database/sqlite/repository"
	"accounts/internal/adapter/http/handler"
	"accounts/internal/core/port"
	"accounts/internal/core/service"
	"accounts/internal/core/telemetry"
	"accounts/internal/shared"
	"accounts/pkg/api"
	"accounts/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	logger, err := shared.NewAppLogger("accounts")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := shared.InitTelemetry(shared.TelemetryConfig{
		ServiceName:    "accounts",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := shared.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	probe := telemetry.NewOTELProbe(logger.Zap())

	repo, cleanup, err := buildRepository(ctx, cfg, probe)

	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	defer cleanup()

	userService := service.NewUserService(repo, probe, cfg.BcryptCost)
	userHandler := handler.NewUserHandler(userService, logger, metrics)

	var rateLimiter *shared.RateLimiter

	if cfg.RateLimitEnabled {
		rateLimiter = shared.NewRateLimiter(logger.Zap(), metrics)
	}

	router := api.SetupRouter(api.HandlersConfig{
		UserHandler: userHandler,
	}, metrics, logger, rateLimiter)

	srv := api.NewServer(router, cfg.Port)

	go func() {
		logger.Info(ctx, "Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Env),
			zap.String("database_driver", cfg.DatabaseDriver),
			zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info(ctx, "Shutting down gracefully...")

	if err := api.Shutdown(srv, 10*time.Second); err != nil {
		logger.Error(ctx, "Forced shutdown", zap.Error(err))
	}
}

func buildRepository(ctx context.Context, cfg config.Config, probe port.Telemetry) (port.UserRepository, func(), error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err := postgresdb.NewDB(ctx)

		if err != nil {
			return nil, nil, err
		}

		return postgresrepo.NewUserRepository(db, probe), db.Close, nil
	default:
		db, err := sqlitedb.NewDB()

		if err != nil {
			return nil, nil, err
		}

		return sqliterepo.NewUserRepository(db, probe), func() { db.Close() }, nil
	}
}
