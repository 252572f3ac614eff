package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/midas-hq/midas/internal/api"
	"github.com/midas-hq/midas/internal/api/handler"
	"github.com/midas-hq/midas/internal/core/service"
	"github.com/midas-hq/midas/internal/infrastructure/config"
	mongodb "github.com/midas-hq/midas/internal/infrastructure/db/mongo"
	"github.com/midas-hq/midas/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFinance(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "finance",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	h := handler.NewFinanceHandler(service.NewFinanceService(mongodb.NewReceivableRepository(db)))
	deps := map[string]handler.DependencyPinger{
		"db": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	e := api.NewFinanceRouter(h, deps, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("finance service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
