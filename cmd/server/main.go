package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-counter/pkg/logger"
	"github.com/wadjakorntonsri/go-click-counter/pkg/metrics"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Store
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open counter store")
	}
	defer closeStore()

	statsd, err := metrics.New(cfg.StatsdAddr, cfg.AppName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create statsd client")
	}
	defer statsd.Close()

	// Initialize Service
	service := services.NewClickService(store, services.WithMetrics(statsd))

	// Initialize Router
	mux := handler.NewRouter(cfg, service, statsd)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("Server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server stopped")
}
