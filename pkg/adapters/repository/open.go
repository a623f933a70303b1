// Package repository selects the CounterStore implementation from configuration.
package repository

import (
	"context"
	"fmt"

	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/rediskv"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

// Open returns the store named by cfg.StoreDriver and a function releasing it.
func Open(ctx context.Context, cfg *config.Config) (ports.CounterStore, func() error, error) {
	switch cfg.StoreDriver {
	case "sqlite", "":
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	case "redis":
		store, err := rediskv.NewStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return store, store.Close, nil
	case "memory":
		return memory.NewStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
