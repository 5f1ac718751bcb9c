package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campustrade/campustrade/internal/api"
	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/config"
	"github.com/campustrade/campustrade/internal/factory"
	"github.com/campustrade/campustrade/internal/health"
	"github.com/campustrade/campustrade/internal/platform/logger"
	"github.com/campustrade/campustrade/internal/store"
)

func main() {
	// Optional driver flag override (memory | sqlite | postgres)
	dbDriver := flag.String("db-driver", "", "Override MARKET_DB_DRIVER (memory, sqlite, postgres)")
	flag.Parse()

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	log := logger.New("market-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dbDriver != "" {
		cfg.DBDriver = *dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Market service starting")

	// Root context bound to SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// -------- Storage layer -----------------
	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Store adapter unavailable")
	}

	// -------- Health monitor ---------------
	storeChecker := store.NewStoreHealthChecker(st, log, 2*time.Second)
	go storeChecker.Start(ctx, cfg.HealthInterval)
	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, cfg.HealthInterval)

	// -------- Router & Server --------------
	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	router := api.NewRouter(st, tokens, log, svcHealth.IsHealthy)
	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown on signal or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			os.Exit(1)
		}
		log.Info().Msg("Server exited")
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
