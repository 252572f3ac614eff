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
	redisdb "github.com/midas-hq/midas/internal/infrastructure/db/redis"
	"github.com/midas-hq/midas/internal/infrastructure/provider"
	"github.com/midas-hq/midas/internal/infrastructure/queue"
	"github.com/midas-hq/midas/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadMessaging(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "messaging",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	dispatcher := queue.NewDispatcher(cfg.Workers, provider.NewLogProvider(log), log)
	dispatcher.Start(ctx)

	svc := service.NewMessagingService(redisdb.NewMessageDedup(rdb), dispatcher)
	h := handler.NewMessagingHandler(svc)
	deps := map[string]handler.DependencyPinger{
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	e := api.NewMessagingRouter(h, deps, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("messaging service listening")
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
