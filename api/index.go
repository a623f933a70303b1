package handler

import (
	"context"
	"net/http"

	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-counter/pkg/logger"
	"github.com/wadjakorntonsri/go-click-counter/pkg/metrics"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.LogLevel, cfg.IsProduction())

	// Note: On Vercel the local filesystem is ephemeral, use STORE_DRIVER=redis or a libsql:// DATABASE_URL
	// The store lives as long as the function instance, which has no shutdown hook to close it.
	store, _, err := repository.Open(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	statsd, err := metrics.New(cfg.StatsdAddr, cfg.AppName)
	if err != nil {
		panic(err)
	}

	service := services.NewClickService(store, services.WithMetrics(statsd))
	mux = handler.NewRouter(cfg, service, statsd)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
