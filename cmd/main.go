package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/mirage/internal/catalog"
	"github.com/davidbz/mirage/internal/config"
	"github.com/davidbz/mirage/internal/httpserver"
	"github.com/davidbz/mirage/internal/httpserver/middleware"
	"github.com/davidbz/mirage/internal/metrics"
	"github.com/davidbz/mirage/internal/observability"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(logger *zap.Logger, cfg *config.Config, server *httpserver.Server) {
		defer func() {
			_ = logger.Sync()
		}()

		go func() {
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		}()

		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Model Catalog
	if err := container.Provide(catalog.NewCatalog); err != nil {
		log.Fatalf("Failed to provide catalog: %v", err)
	}

	// Usage Metrics (Redis-backed when configured, no-op otherwise)
	if err := container.Provide(func(cfg config.RedisConfig) metrics.Recorder {
		if !cfg.Enabled() {
			return metrics.NewNopRecorder()
		}

		return metrics.NewRedisRecorder(metrics.Config{
			Addr:      cfg.Addr,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
		})
	}); err != nil {
		log.Fatalf("Failed to provide usage recorder: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
