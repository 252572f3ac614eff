package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/gateway"
	"github.com/midas-hq/midas/internal/infrastructure/config"
	"github.com/midas-hq/midas/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	// Running without a public key requires the explicit opt-in flag.
	// A silently open gateway is exactly the misconfiguration this guards.
	var verifier *auth.Verifier
	switch {
	case cfg.JWTPublicKey != "":
		keys, err := auth.NewKeyMaterial(cfg.JWTKeyID, "", cfg.JWTPublicKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid JWT_PUBLIC_KEY")
		}
		verifier, err = auth.NewVerifier(keys)
		if err != nil {
			log.Fatal().Err(err).Msg("verifier init failed")
		}
	case cfg.AllowAnonymous:
		log.Warn().Msg("JWT_PUBLIC_KEY not set, serving anonymously (GATEWAY_ALLOW_ANONYMOUS=true)")
		verifier = auth.NewAnonymousVerifier()
	default:
		log.Fatal().Msg("JWT_PUBLIC_KEY is required unless GATEWAY_ALLOW_ANONYMOUS=true")
	}

	proxy, err := gateway.NewProxy(map[gateway.Backend]string{
		gateway.BackendIdentity:  cfg.Backends.Identity,
		gateway.BackendRegistry:  cfg.Backends.Registry,
		gateway.BackendFinance:   cfg.Backends.Finance,
		gateway.BackendBilling:   cfg.Backends.Billing,
		gateway.BackendMessaging: cfg.Backends.Messaging,
		gateway.BackendReporting: cfg.Backends.Reporting,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}

	g := gateway.New(gateway.NewRouteTable(gateway.DefaultRules()), verifier, proxy, log)
	e := gateway.NewRouter(g, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
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
